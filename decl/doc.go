// Package decl loads named shape declarations from YAML documents.
//
// A document has a single schemas section. Each entry declares one shape,
// either directly or derived from other entries:
//
//	schemas:
//	  Value:
//	    fields:
//	      price: number
//	      order: number
//	  Test:
//	    fields:
//	      name: string
//	      readonly value?: number   # readonly and optional
//	      details?: Value
//	  TestOmit:
//	    omit: {from: Test, keys: [value]}
//	  Fruits:
//	    record: {keys: [orange, banana, apple], value: Value}
//
// Declarations: fields, shape, partial, required, pick, omit, record,
// optionalRecord, first, concat, parameters, returns and awaited.
//
// Shapes are written as expressions ("string | null", "Promise<Value>",
// "[a: string, ...rest: number[]]", "(url: string) => void"). YAML strips one
// level of quoting, so a string literal shape is written "'awesome'". YAML
// sequences are tuples and YAML mappings are inline objects. Integer and
// float YAML keys are number keys; quote them to get string keys.
//
// Declarations may appear in any order. Load reports every problem it finds
// (unknown keys in pick/omit, unresolved names, cycles, parse errors) as
// goshape.Issues whose paths point into the document, for example
// /schemas/TestOmit/omit/keys/0.
package decl
