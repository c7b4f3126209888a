package memory

// SnapshotBuckets names the JSON buckets the snapshotting backends write, one
// per entity map.
var SnapshotBuckets = []string{"zoos", "enclosures", "animals", "categories"}

// Bucket returns a pointer to the snapshot field stored under name, or nil for
// unknown buckets. Backends marshal and unmarshal through it.
func (s *Snapshot) Bucket(name string) any {
	switch name {
	case "zoos":
		return &s.Zoos
	case "enclosures":
		return &s.Enclosures
	case "animals":
		return &s.Animals
	case "categories":
		return &s.Categories
	default:
		return nil
	}
}
