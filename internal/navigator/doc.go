// Package navigator implements the interactive editing loop.
//
// A Navigator keeps a cursor (Path) into the configuration value and walks the
// compiled schema alongside it. Each iteration resolves the node under the
// cursor, shows one menu or prompt through a Presenter and applies the answer:
//
//	Int, Str   prompt for a new value, then return to the parent
//	Record     one row per field; choosing a row descends
//	List       one row per element plus delete and add controls
//
// Every menu also carries an exit row, and a back row below the root. Plugins
// registered for a path suffix contribute one trailing row.
package navigator
