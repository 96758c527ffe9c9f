package cityjson

// PartitionByType splits the full city-object mapping into two disjoint
// views: buildings and building parts. Objects of any other type are
// silently ignored.
func PartitionByType(objects map[string]*CityObject) (buildings, parts map[string]*CityObject) {
	buildings = make(map[string]*CityObject)
	parts = make(map[string]*CityObject)

	for id, obj := range objects {
		switch obj.Type {
		case TypeBuilding:
			buildings[id] = obj
		case TypeBuildingPart:
			parts[id] = obj
		}
	}

	return buildings, parts
}
