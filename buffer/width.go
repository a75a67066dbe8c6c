package buffer

import "github.com/mattn/go-runewidth"

// widthCondition measures East Asian ambiguous characters as one cell
// regardless of locale, so column math does not depend on LANG.
var widthCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// StringWidth returns the number of terminal cells s occupies.
func StringWidth(s string) int {
	return widthCondition.StringWidth(s)
}
