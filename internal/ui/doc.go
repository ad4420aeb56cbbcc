// Package ui provides semantic text formatting for dotenvage output.
//
// Each formatter names a kind of content rather than a color:
//
//	ui.Name.Sprint("DATABASE_URL")      // variable names
//	ui.Value.Sprint("ab****yz")         // values, usually masked
//	ui.Path.Sprint(".env.production")   // files
//	ui.Dimension.Sprint("arm64")        // resolved dimension tokens
//	ui.Code.Sprint("dotenvage keygen")  // commands
//	ui.Success.Sprint("✓")
//	ui.Muted.Sprint("encrypted")
//
// Colors are disabled when NO_COLOR is set or the terminal does not
// support them. Formatters then fall back to plain decorations: Code uses
// backticks, Value single quotes, Dimension brackets and Muted
// parentheses.
package ui
