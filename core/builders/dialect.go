package builders

import (
	"strconv"
	"strings"
)

// QuoteIdent wraps ident in the open and close quote characters and escapes
// any close character inside it by doubling, e.g. QuoteIdent("a`b", "`", "`")
// returns "`a``b`".
func QuoteIdent(ident, open, close string) string {
	return open + strings.ReplaceAll(ident, close, close+close) + close
}

// PlaceholderQuestion is the "?" placeholder style (mysql, sqlite).
func PlaceholderQuestion(int) string {
	return "?"
}

// PlaceholderDollar is the "$n" placeholder style (postgres).
func PlaceholderDollar(n int) string {
	return "$" + strconv.Itoa(n)
}

// PlaceholderAtP is the "@pn" placeholder style (sqlserver).
func PlaceholderAtP(n int) string {
	return "@p" + strconv.Itoa(n)
}
