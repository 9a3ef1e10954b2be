package components

import "github.com/ERnsTL/flowd-go/registry"

func init() {
	registry.Default.Register("FileReader", NewFileReader, FileReaderMetadata())
	registry.Default.Register("SplitLines", NewSplitLines, SplitLinesMetadata())
	registry.Default.Register("Trim", NewTrim, TrimMetadata())
}
