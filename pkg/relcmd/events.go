package relcmd

type (
	// Sent to set the total number of tracked files.
	EventSetFileTotal int

	// Sent when a file rewrite has started.
	EventRewritingFile string

	// Sent when a file has been rewritten and verified, or when a fatal error
	// occurs for that file.
	EventRewroteFile struct {
		Err  error
		Path string
	}

	// Sent when a commit has been created.
	EventCommitted struct {
		Message string
	}

	// Sent when all work has completed.
	EventDone struct {
		Err error
	}
)
