package token

import "strings"

var keywords = map[string]Kind{
	"function":   KwFunction,
	"fn":         KwFn,
	"return":     KwReturn,
	"yield":      KwYield,
	"throw":      KwThrow,
	"class":      KwClass,
	"interface":  KwInterface,
	"trait":      KwTrait,
	"enum":       KwEnum,
	"abstract":   KwAbstract,
	"final":      KwFinal,
	"public":     KwPublic,
	"protected":  KwProtected,
	"private":    KwPrivate,
	"static":     KwStatic,
	"readonly":   KwReadonly,
	"var":        KwVar,
	"new":        KwNew,
	"extends":    KwExtends,
	"implements": KwImplements,
	"use":        KwUse,
	"namespace":  KwNamespace,
	"const":      KwConst,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// В PHP ключевые слова регистронезависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
