package exec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ceesaxp/beads/pkg/exec"
)

func TestRunCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.RunCommand(context.Background(), "", "echo", exec.CmdOpts{}, "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", out)
}

func TestRunCommand_Failure(t *testing.T) {
	t.Parallel()

	_, err := exec.RunCommand(context.Background(), "", "false", exec.CmdOpts{})
	require.Error(t, err)

	var cmdErr *exec.CmdError
	require.ErrorAs(t, err, &cmdErr)
	require.Contains(t, cmdErr.Error(), "false")
}

func TestRedact(t *testing.T) {
	t.Parallel()

	redactor := exec.Redact([]string{"s3cret"})
	require.Equal(t, "token ******", redactor("token s3cret"))
	require.Equal(t, "clean", exec.Unredacted("clean"))
}
