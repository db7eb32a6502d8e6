package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseGrid turns "key=v1,v2" arguments into parallel name and value lists.
func parseGrid(args []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		key, list, ok := strings.Cut(arg, "=")
		if !ok || key == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid grid %q, expected key=v1,v2", arg)
		}
		var values []float64
		for _, raw := range strings.Split(list, ",") {
			v, err := cast.ToFloat64E(strings.TrimSpace(raw))
			if err != nil {
				return nil, nil, fmt.Errorf("grid %s: %w", key, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.ToLower(strings.TrimSpace(key)))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}
