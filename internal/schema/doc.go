// Package schema compiles schema description files and checks configuration
// values against them.
//
// A schema description is itself a JSON document:
//
//	{
//	  "name": "Str unnamed",
//	  "retries": "Int 3",
//	  "drives": [
//	    {"unit_name": "Str", "unit_number": "Str", "trigger_interval_min": "Int 180"},
//	    []
//	  ]
//	}
//
// Strings describe scalars ("Int <default>", "Str <default>"), objects
// describe records with a fixed key set, and arrays describe lists: the first
// element is the element schema, the optional second one the list's own
// default value.
//
// Example usage:
//
//	root, err := schema.Compile(raw)
//	if err != nil {
//		return err
//	}
//	value := schema.DefaultValue(root)
//	if err := schema.Validate(value, root, nil); err != nil {
//		return err // never happens for defaults
//	}
package schema
