package driver

import (
	"docsniff/internal/diag"
	"docsniff/internal/lexer"
	"docsniff/internal/source"
	"docsniff/internal/token"
)

// TokenizeResult is the output of "docsniff tokenize".
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	View    *token.View
	Bag     *diag.Bag
}

// Tokenize loads a single file and lexes it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	view := lexer.Tokenize(file, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag})})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		View:    view,
		Bag:     bag,
	}, nil
}
