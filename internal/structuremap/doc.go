// Package structuremap provides a read-only model of the FHIR StructureMap
// resource, its loader and a structural validator.
//
// Documents are decoded with gopkg.in/yaml.v3, so both the canonical FHIR JSON
// form and a YAML rendition of the same resource are accepted:
//
//	{
//	  "resourceType": "StructureMap",
//	  "name": "PatientToBundle",
//	  "structure": [
//	    {"url": "http://hl7.org/fhir/StructureDefinition/Patient", "mode": "source", "alias": "src"},
//	    {"url": "http://hl7.org/fhir/StructureDefinition/Bundle", "mode": "target", "alias": "tgt"}
//	  ],
//	  "group": [{
//	    "name": "main",
//	    "input": [
//	      {"name": "source", "type": "src", "mode": "source"},
//	      {"name": "bundle", "type": "tgt", "mode": "target"}
//	    ],
//	    "rule": [{
//	      "name": "setId",
//	      "source": [{"context": "source", "element": "identifier", "variable": "v"}],
//	      "target": [{"context": "bundle", "element": "id", "transform": "copy",
//	                  "parameter": [{"valueId": "v"}]}]
//	    }]
//	  }]
//	}
//
// # Rules
//
// A rule has source-match clauses, target-assignment clauses, dependent
// invocations of other groups and nested rules. Only the fields needed to
// follow data flow are modelled; everything else in the resource is ignored
// by the decoder.
//
// # Transforms
//
// Target transforms are decoded into the Transform enum. Transforms that copy
// or wrap a value taken from their first parameter report ProducesValue.
// Unknown transform codes fail decoding.
package structuremap
