package sniff

import (
	"fmt"

	"docsniff/internal/diag"
)

var messageTemplates = map[diag.Code]string{
	diag.Missing:                       "Missing doc comment for function %s()",
	diag.WrongStyle:                    `You must use "/**" style comments for a function comment`,
	diag.SpacingAfter:                  "There must be no blank lines after the function comment",
	diag.EmptySees:                     "Content missing for @see tag in function comment",
	diag.DuplicateReturn:               "Only 1 @return tag is allowed in a function comment",
	diag.MissingReturn:                 "Missing @return tag in function comment",
	diag.MissingReturnType:             "Return type missing for @return tag in function comment",
	diag.InvalidReturn:                 `Expected "%s" but found "%s" for function return type`,
	diag.InvalidReturnVoid:             "Function return type is void, but function contains return statement",
	diag.InvalidNoReturn:               "Function return type is not void, but function has no return statement",
	diag.InvalidReturnNotVoid:          "Function return type is not void, but function is returning void here",
	diag.InvalidThrows:                 "Exception type and comment missing for @throws tag in function comment",
	diag.MissingParamType:              "Missing parameter type",
	diag.MissingParamName:              "Missing parameter name",
	diag.MissingParamComment:           "Missing parameter comment",
	diag.IncorrectParamVarName:         `Expected "%s" but found "%s" for parameter type`,
	diag.ParamNameNoMatch:              "Doc comment for parameter %s does not match actual variable name %s",
	diag.ParamNameNoCaseMatch:          "Doc comment for parameter %s does not match case of actual variable name %s",
	diag.ExtraParamComment:             "Superfluous parameter comment",
	diag.SpacingAfterParamName:         "Expected %s spaces after parameter name; %s found",
	diag.ParamCommentAlignment:         "Parameter comment not aligned correctly; expected %s spaces but found %s",
	diag.ParamCommentAlignmentExceeded: "Parameter comment not aligned correctly; expected %s spaces but found %s",
	diag.MissingParamTag:               `Doc comment for parameter "%s" missing`,
}

// Template returns the message template of a code.
func Template(code diag.Code) string {
	if t, ok := messageTemplates[code]; ok {
		return t
	}
	return code.Title()
}

func formatMessage(code diag.Code, args []string) string {
	tmpl := Template(code)
	if len(args) == 0 {
		return tmpl
	}
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a
	}
	return fmt.Sprintf(tmpl, vals...)
}

func isWarning(code diag.Code) bool {
	switch code {
	case diag.InvalidReturnVoid, diag.InvalidNoReturn, diag.InvalidReturnNotVoid,
		diag.ParamNameNoMatch, diag.ParamNameNoCaseMatch:
		return true
	}
	return false
}
