// Package resolver computes the final display properties for a stored
// attachment at render time.
//
// The resolver is a pure function from (filename, requested properties)
// to the property mapping the external renderer consumes. It never fails:
// missing optional inputs such as an absent width are normal and handled
// through documented defaults.
//
//	props := resolver.Resolve("report_100.0_200.0_10.0_20.0.pdf",
//	    resolver.Properties{resolver.KeyWidth: 50})
//	// props: background=white, scale=0.5, crop={50 100 5 10}
//
// Width and scale are mutually exclusive in the result. When a filename
// carries a crop rectangle and the caller requested an explicit width, the
// width is reinterpreted as a derived scale over native PDF units and the
// width key is removed.
package resolver
