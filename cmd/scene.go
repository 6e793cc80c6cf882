package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/achilleasa/lbvh/types"
)

// readBoxScene loads a list of AABBs from a plain text file: one box per
// non-empty, non-comment ("#") line, either 3 numbers (a point, turned into
// a zero-volume box) or 6 numbers (lowerX lowerY lowerZ upperX upperY
// upperZ). Blank lines and lines starting with "#" are skipped.
func readBoxScene(filename string) ([]types.AABB3, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("lbvhtool: reading scene file %q: %w", filename, err)
	}
	defer f.Close()

	var boxes []types.AABB3
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		nums := make([]float32, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("lbvhtool: %s:%d: %w", filename, lineNo, err)
			}
			nums[i] = float32(v)
		}

		switch len(nums) {
		case 3:
			p := types.Vec3{nums[0], nums[1], nums[2]}
			boxes = append(boxes, types.AABB3{Lower: p, Upper: p})
		case 6:
			boxes = append(boxes, types.AABB3{
				Lower: types.Vec3{nums[0], nums[1], nums[2]},
				Upper: types.Vec3{nums[3], nums[4], nums[5]},
			})
		default:
			return nil, fmt.Errorf("lbvhtool: %s:%d: expected 3 or 6 numbers, got %d", filename, lineNo, len(nums))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lbvhtool: reading scene file %q: %w", filename, err)
	}

	return boxes, nil
}
