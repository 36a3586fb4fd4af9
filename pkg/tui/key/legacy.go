// ABOUTME: Legacy escape sequence mappings for CSI and SS3 terminal key codes.
// ABOUTME: Maps final bytes and numeric ~ codes to Key values for arrows, home, end, page, and delete.

package key

// csiFinal maps the byte after ESC [ to a key.
var csiFinal = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// ss3Final maps the byte after ESC O to a key. Some terminals send these
// in application cursor mode.
var ss3Final = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeCodes maps the number in ESC [ n ~ to a key. Home and End each
// have two encodings depending on the terminal (vt220 vs rxvt).
var tildeCodes = map[int]KeyType{
	1: KeyHome,
	7: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	8: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
}
