package main

import (
	"fmt"
	"strconv"

	"github.com/packedrtree/aabbtree"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <index-file> <kind> <args...>",
		Short: "Query a saved index",
		Long: `query loads a float64-coordinate index and runs one of:

  intersect min_x min_y max_x max_y
  point x y
  nearest x y k
  circle x y r
  direction min_x min_y max_x max_y dx dy dist

printing the matching item ids, one per line.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(args[0], args[1], args[2:])
		},
	}
	return cmd
}

func runQuery(indexPath, kind string, rest []string) error {
	idx, err := aabbtree.LoadFloat64Index(indexPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", indexPath, err)
	}

	nums, err := parseFloats(rest)
	if err != nil {
		return err
	}

	var ids []int
	switch kind {
	case "intersect":
		if len(nums) != 4 {
			return fmt.Errorf("intersect requires 4 args: min_x min_y max_x max_y")
		}
		q := aabbtree.Box[float64]{MinX: nums[0], MinY: nums[1], MaxX: nums[2], MaxY: nums[3]}
		ids = idx.Intersecting(q, nil)
	case "point":
		if len(nums) != 2 {
			return fmt.Errorf("point requires 2 args: x y")
		}
		ids = idx.Point(nums[0], nums[1], nil)
	case "nearest":
		if len(nums) != 3 {
			return fmt.Errorf("nearest requires 3 args: x y k")
		}
		ids = idx.NearestK(nums[0], nums[1], int(nums[2]), nil)
	case "circle":
		if len(nums) != 3 {
			return fmt.Errorf("circle requires 3 args: x y r")
		}
		ids = idx.Circle(nums[0], nums[1], nums[2], nil)
	case "direction":
		if len(nums) != 7 {
			return fmt.Errorf("direction requires 7 args: min_x min_y max_x max_y dx dy dist")
		}
		rect := aabbtree.Box[float64]{MinX: nums[0], MinY: nums[1], MaxX: nums[2], MaxY: nums[3]}
		ids = idx.InDirection(rect, nums[4], nums[5], nums[6], nil)
	default:
		return fmt.Errorf("unknown query kind %q", kind)
	}

	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}
