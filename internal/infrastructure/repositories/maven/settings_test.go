//go:build unit

package maven_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/mvnoffline/internal/infrastructure/repositories/maven"
)

func TestWriteOfflineSettings(t *testing.T) {
	t.Parallel()

	t.Run("should write a settings file pinning the repository", func(t *testing.T) {
		t.Parallel()

		// given
		targetRepo := filepath.Join(t.TempDir(), "offline-repo")

		// when
		path, err := maven.WriteOfflineSettings(targetRepo)

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(targetRepo, maven.SettingsFileName), path)

		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		content := string(data)
		assert.Contains(t, content, "<offline>true</offline>")
		assert.Contains(t, content, "<localRepository>"+filepath.ToSlash(targetRepo)+"</localRepository>")
		assert.Contains(t, content, "<mirrorOf>*</mirrorOf>")
		assert.Contains(t, content, "<checksumPolicy>ignore</checksumPolicy>")
		assert.Contains(t, content, "<activeProfile>offline</activeProfile>")
	})

	t.Run("should create the target repository when absent", func(t *testing.T) {
		t.Parallel()

		// given
		targetRepo := filepath.Join(t.TempDir(), "deep", "nested", "repo")

		// when
		_, err := maven.WriteOfflineSettings(targetRepo)

		// then
		require.NoError(t, err)
		assert.DirExists(t, targetRepo)
	})
}
