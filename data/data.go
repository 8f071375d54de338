// Package data embeds the default recipe dataset.
package data

import _ "embed"

//go:embed recipes.json
var Recipes []byte
