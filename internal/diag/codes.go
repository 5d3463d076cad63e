package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexUnterminatedHeredoc Code = 1004

	// Наличие комментария и тегов
	DocPresenceInfo     Code = 2000
	Missing             Code = 2001
	WrongStyle          Code = 2002
	MissingReturn       Code = 2003
	MissingReturnType   Code = 2004
	MissingParamType    Code = 2005
	MissingParamName    Code = 2006
	MissingParamComment Code = 2007
	MissingParamTag     Code = 2008
	EmptySees           Code = 2009
	InvalidThrows       Code = 2010

	// Согласованность комментария с объявлением
	DocConsistencyInfo    Code = 2100
	DuplicateReturn       Code = 2101
	InvalidReturn         Code = 2102
	IncorrectParamVarName Code = 2103
	ParamNameNoMatch      Code = 2104
	ParamNameNoCaseMatch  Code = 2105
	ExtraParamComment     Code = 2106

	// Поток управления
	DocControlFlowInfo   Code = 2200
	InvalidReturnVoid    Code = 2201
	InvalidNoReturn      Code = 2202
	InvalidReturnNotVoid Code = 2203

	// Форматирование
	DocFormattingInfo             Code = 2300
	SpacingAfter                  Code = 2301
	SpacingAfterParamName         Code = 2302
	ParamCommentAlignment         Code = 2303
	ParamCommentAlignmentExceeded Code = 2304

	// I/O и конфигурация
	IOLoadFileError Code = 4001
	IOConfigError   Code = 4002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeIDs = map[Code]string{
		UnknownCode:                   "Unknown",
		LexUnknownChar:                "UnknownChar",
		LexUnterminatedString:         "UnterminatedString",
		LexUnterminatedComment:        "UnterminatedComment",
		LexUnterminatedHeredoc:        "UnterminatedHeredoc",
		Missing:                       "Missing",
		WrongStyle:                    "WrongStyle",
		MissingReturn:                 "MissingReturn",
		MissingReturnType:             "MissingReturnType",
		MissingParamType:              "MissingParamType",
		MissingParamName:              "MissingParamName",
		MissingParamComment:           "MissingParamComment",
		MissingParamTag:               "MissingParamTag",
		EmptySees:                     "EmptySees",
		InvalidThrows:                 "InvalidThrows",
		DuplicateReturn:               "DuplicateReturn",
		InvalidReturn:                 "InvalidReturn",
		IncorrectParamVarName:         "IncorrectParamVarName",
		ParamNameNoMatch:              "ParamNameNoMatch",
		ParamNameNoCaseMatch:          "ParamNameNoCaseMatch",
		ExtraParamComment:             "ExtraParamComment",
		InvalidReturnVoid:             "InvalidReturnVoid",
		InvalidNoReturn:               "InvalidNoReturn",
		InvalidReturnNotVoid:          "InvalidReturnNotVoid",
		SpacingAfter:                  "SpacingAfter",
		SpacingAfterParamName:         "SpacingAfterParamName",
		ParamCommentAlignment:         "ParamCommentAlignment",
		ParamCommentAlignmentExceeded: "ParamCommentAlignmentExceeded",
		IOLoadFileError:               "LoadFileError",
		IOConfigError:                 "ConfigError",
		ObsTimings:                    "Timings",
	}

	codeDescription = map[Code]string{
		UnknownCode:                   "Unknown error",
		LexUnknownChar:                "Unknown character",
		LexUnterminatedString:         "Unterminated string literal",
		LexUnterminatedComment:        "Unterminated comment",
		LexUnterminatedHeredoc:        "Unterminated heredoc",
		Missing:                       "Function has no doc comment",
		WrongStyle:                    "Function comment is not a /** doc comment",
		MissingReturn:                 "Missing @return tag",
		MissingReturnType:             "Missing type for @return tag",
		MissingParamType:              "Missing type for @param tag",
		MissingParamName:              "Missing variable name for @param tag",
		MissingParamComment:           "Missing description for @param tag",
		MissingParamTag:               "Parameter is not documented",
		EmptySees:                     "Empty @see tag",
		InvalidThrows:                 "Missing exception type for @throws tag",
		DuplicateReturn:               "More than one @return tag",
		InvalidReturn:                 "Non-canonical @return type",
		IncorrectParamVarName:         "Non-canonical @param type",
		ParamNameNoMatch:              "@param name does not match the parameter",
		ParamNameNoCaseMatch:          "@param name differs from the parameter in case",
		ExtraParamComment:             "Superfluous @param tag",
		InvalidReturnVoid:             "Void function returns a value",
		InvalidNoReturn:               "Non-void function has no return statement",
		InvalidReturnNotVoid:          "Non-void function returns without a value",
		SpacingAfter:                  "Blank lines after the doc comment",
		SpacingAfterParamName:         "Wrong spacing after @param name",
		ParamCommentAlignment:         "@param description continuation under-indented",
		ParamCommentAlignmentExceeded: "@param description continuation over-indented",
		IOLoadFileError:               "I/O load file error",
		IOConfigError:                 "Configuration error",
		ObsInfo:                       "Observability information",
		ObsTimings:                    "Pipeline timings",
	}
)

// Category groups codes the way reports summarise them.
type Category uint8

const (
	CatOther Category = iota
	CatLexical
	CatPresence
	CatConsistency
	CatControlFlow
	CatFormatting
	CatIO
)

func (c Category) String() string {
	switch c {
	case CatLexical:
		return "lexical"
	case CatPresence:
		return "presence"
	case CatConsistency:
		return "consistency"
	case CatControlFlow:
		return "control-flow"
	case CatFormatting:
		return "formatting"
	case CatIO:
		return "io"
	}
	return "other"
}

// Category returns the group of the code, derived from its numeric range.
func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return CatLexical
	case ic >= 2000 && ic < 2100:
		return CatPresence
	case ic >= 2100 && ic < 2200:
		return CatConsistency
	case ic >= 2200 && ic < 2300:
		return CatControlFlow
	case ic >= 2300 && ic < 2400:
		return CatFormatting
	case ic >= 4000 && ic < 5000:
		return CatIO
	}
	return CatOther
}

// ID returns the stable string form used in reports and config exclusions.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("E%04d", int(c))
}

// Number returns the numeric form, e.g. "DOC2101".
func (c Code) Number() string {
	switch c.Category() {
	case CatLexical:
		return fmt.Sprintf("LEX%04d", int(c))
	case CatIO:
		return fmt.Sprintf("IO%04d", int(c))
	case CatOther:
		return fmt.Sprintf("OBS%04d", int(c))
	}
	return fmt.Sprintf("DOC%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// LookupCode resolves a code by its ID; used for config exclusions.
func LookupCode(id string) (Code, bool) {
	for c, name := range codeIDs {
		if name == id && c != UnknownCode {
			return c, true
		}
	}
	return UnknownCode, false
}

// DocCodes returns every doc comment code in numeric order.
func DocCodes() []Code {
	var out []Code
	for _, base := range []Code{Missing, DuplicateReturn, InvalidReturnVoid, SpacingAfter} {
		for c := base; ; c++ {
			if _, ok := codeIDs[c]; !ok {
				break
			}
			out = append(out, c)
		}
	}
	return out
}
