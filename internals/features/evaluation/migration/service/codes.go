// file: internals/features/evaluation/migration/service/codes.go
package service

import (
	"strconv"
	"strings"
)

const codeSeparators = ".-_/ "

// categoryCode: segmen pertama dari prefix bersama kode indikator satu grup.
// "A.1.1", "A.1.2", "A.2.1" → "A". Tidak ada prefix → fallback "U<n>".
func categoryCode(codes []string, position int) string {
	p := strings.TrimLeft(commonPrefix(codes), codeSeparators)
	if i := strings.IndexAny(p, codeSeparators); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "U" + strconv.Itoa(position+1)
	}
	return p
}

// subCategoryCode: segmen induk dari kode indikator pertama. "A.1.2" → "A.1".
func subCategoryCode(firstIndicatorCode string) string {
	c := strings.TrimSpace(firstIndicatorCode)
	if i := strings.LastIndexAny(c, codeSeparators); i > 0 {
		if parent := strings.TrimRight(c[:i], codeSeparators); parent != "" {
			return parent
		}
	}
	return c
}

func commonPrefix(codes []string) string {
	if len(codes) == 0 {
		return ""
	}
	p := strings.TrimSpace(codes[0])
	for _, c := range codes[1:] {
		c = strings.TrimSpace(c)
		n := 0
		for n < len(p) && n < len(c) && p[n] == c[n] {
			n++
		}
		p = p[:n]
		if p == "" {
			break
		}
	}
	return p
}
