package llm

var (
	SplitSystem = splitSystem
	Transcript  = transcript
)
