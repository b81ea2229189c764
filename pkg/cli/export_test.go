package cli

var (
	ChatLoop       = chatLoop
	PrintMemory    = printMemory
	GetIndexConfig = getIndexConfig
)
