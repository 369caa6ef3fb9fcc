// Package highlight classifies syntax leaves and turns them into paint
// instructions for the editor.
package highlight

// Group is a highlight group name the editor maps to a visual style.
type Group string

const (
	Keyword    Group = "Keyword"
	Identifier Group = "Identifier"
	Normal     Group = "Normal"
)

// UngroupedNamespace paints highlights outside any namespace.
const UngroupedNamespace = -1
