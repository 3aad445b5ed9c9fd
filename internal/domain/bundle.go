package domain

import "sort"

// Bundle is a named group of bars sharing the same bundle string.
type Bundle struct {
	Name   string
	BarIDs []string
}

// GroupByBundle indexes bars by bundle name. Bars without a bundle are skipped.
// Bundles are sorted by name; members keep their input order.
func GroupByBundle(bars []*Bar) []Bundle {
	index := make(map[string]int)
	var bundles []Bundle
	for _, b := range bars {
		name := b.Config.BundleName()
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(bundles)
			index[name] = i
			bundles = append(bundles, Bundle{Name: name})
		}
		bundles[i].BarIDs = append(bundles[i].BarIDs, b.Config.ID)
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Name < bundles[j].Name })
	return bundles
}
