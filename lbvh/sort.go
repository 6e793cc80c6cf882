package lbvh

import (
	"sort"

	"github.com/achilleasa/lbvh/device"
)

// PairSorter sorts a (key, primID) buffer pair by ascending key, carrying
// primIDs along. No global stability requirement is imposed; only the
// key/value pairing must be preserved.
type PairSorter interface {
	Sort(dev *device.Device, keys, primIDs *device.Buffer, length int) error
}

// HostPairSorter is the default PairSorter: it downloads both buffers,
// sorts them host-side with the standard library's sort.Sort, and
// re-uploads. The sort algorithm itself is an external collaborator with
// no mandated implementation beyond "ascending by key, values carried
// along", so a host round trip using the standard library is a legitimate
// default; a GPU radix or bitonic sort kernel can be substituted by
// implementing PairSorter against the same buffers.
type HostPairSorter struct{}

type keyPrimPairs struct {
	keys    []uint64
	primIDs []uint32
}

func (p *keyPrimPairs) Len() int { return len(p.keys) }
func (p *keyPrimPairs) Less(i, j int) bool { return p.keys[i] < p.keys[j] }
func (p *keyPrimPairs) Swap(i, j int) {
	p.keys[i], p.keys[j] = p.keys[j], p.keys[i]
	p.primIDs[i], p.primIDs[j] = p.primIDs[j], p.primIDs[i]
}

func (HostPairSorter) Sort(dev *device.Device, keys, primIDs *device.Buffer, length int) error {
	if length == 0 {
		return nil
	}

	keyBuf := make([]uint64, length)
	primBuf := make([]uint32, length)

	if err := keys.ReadMortonKeys(0, keyBuf); err != nil {
		return err
	}
	if err := primIDs.ReadUint32s(0, primBuf); err != nil {
		return err
	}

	sort.Sort(&keyPrimPairs{keys: keyBuf, primIDs: primBuf})

	if err := keys.WriteMortonKeys(keyBuf, 0); err != nil {
		return err
	}
	if err := primIDs.WriteUint32s(primBuf, 0); err != nil {
		return err
	}
	return nil
}
