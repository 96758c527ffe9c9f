package main

import (
	"fmt"
	"sort"

	"renodat/internal/cityjson"
)

// runAnalyzeMode prints a structural summary of the document: object
// counts by type, geometry counts by LoD and surface counts by semantic
// tag. Useful for checking what a new city file actually contains before
// running an extraction over it.
func runAnalyzeMode(doc *cityjson.Document) {
	fmt.Printf("CityJSON version: %s\n", orUnknown(doc.Version))
	fmt.Printf("Vertices: %d\n", len(doc.Vertices))
	fmt.Printf("Transform: scale=%v translate=%v\n", doc.Transform.Scale, doc.Transform.Translate)
	fmt.Printf("CityObjects: %d\n", len(doc.CityObjects))

	typeCounts := make(map[string]int)
	lodCounts := make(map[cityjson.LoD]int)
	surfaceCounts := make(map[string]int)

	for _, obj := range doc.CityObjects {
		typeCounts[obj.Type]++
		for _, geom := range obj.Geometry {
			lodCounts[geom.LoD]++
			if geom.Semantics == nil {
				continue
			}
			for _, surface := range geom.Semantics.Surfaces {
				surfaceCounts[surface.Type]++
			}
		}
	}

	fmt.Println("\nObjects by type:")
	for _, line := range sortedCounts(typeCounts) {
		fmt.Println("  " + line)
	}

	lodByString := make(map[string]int, len(lodCounts))
	for lod, n := range lodCounts {
		lodByString[string(lod)] = n
	}
	fmt.Println("\nGeometries by LoD:")
	for _, line := range sortedCounts(lodByString) {
		fmt.Println("  " + line)
	}

	fmt.Println("\nSemantic surfaces by type:")
	for _, line := range sortedCounts(surfaceCounts) {
		fmt.Println("  " + line)
	}
}

func sortedCounts(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", orUnknown(k), counts[k]))
	}
	return lines
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
