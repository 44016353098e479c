// Package schema describes the shapes that typed views enforce over a data
// tree: primitives, enums, records, arrays, maps, unions, fixed-size bytes
// and typerefs.
//
// Descriptors are read-only once built. A Field belongs to exactly one
// Record; building a second record from the same Field fails.
//
// Schemas can be built in code
//
//	rec, err := schema.NewRecord("com.example.Point",
//	    &schema.Field{Name: "x", Type: schema.Int},
//	    &schema.Field{Name: "label", Type: schema.String, Optional: true},
//	)
//
// or parsed from a JSON or YAML document with Parse.
package schema
