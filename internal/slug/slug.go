package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Turkish letters transliterated to their ASCII equivalents. ToLower maps
// 'İ' to 'i̇' (i + combining dot) and 'I' to 'i', so both dotted and
// dotless forms are covered after lowercasing.
var turkishReplacer = strings.NewReplacer(
	"ç", "c",
	"ğ", "g",
	"ı", "i",
	"ö", "o",
	"ş", "s",
	"ü", "u",
	"̇", "", // combining dot above, left over from lowercasing İ
)

// Make creates a URL-friendly slug from a product or category name.
//
//	"Türk Kahvesi"     → "turk-kahvesi"
//	"Çekirdek  Kahve!" → "cekirdek-kahve"
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = turkishReplacer.Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
