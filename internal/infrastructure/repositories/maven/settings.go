package maven

import (
	"fmt"
	"os"
	"path/filepath"
)

// SettingsFileName is the offline settings file written into the target repo.
const SettingsFileName = "settings.xml"

const settingsTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<settings xmlns="http://maven.apache.org/SETTINGS/1.0.0"
          xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
          xsi:schemaLocation="http://maven.apache.org/SETTINGS/1.0.0
                              http://maven.apache.org/xsd/settings-1.0.0.xsd">

    <localRepository>%[1]s</localRepository>
    <offline>true</offline>

    <mirrors>
        <mirror>
            <id>local-repo</id>
            <name>Local Repository</name>
            <url>file://%[1]s</url>
            <mirrorOf>*</mirrorOf>
        </mirror>
    </mirrors>

    <profiles>
        <profile>
            <id>offline</id>
            <repositories>
                <repository>
                    <id>local-repo</id>
                    <name>Local Repository</name>
                    <url>file://%[1]s</url>
                    <layout>default</layout>
                    <releases>
                        <enabled>true</enabled>
                        <updatePolicy>never</updatePolicy>
                        <checksumPolicy>ignore</checksumPolicy>
                    </releases>
                    <snapshots>
                        <enabled>true</enabled>
                        <updatePolicy>never</updatePolicy>
                        <checksumPolicy>ignore</checksumPolicy>
                    </snapshots>
                </repository>
            </repositories>
            <pluginRepositories>
                <pluginRepository>
                    <id>local-repo</id>
                    <name>Local Repository</name>
                    <url>file://%[1]s</url>
                    <layout>default</layout>
                    <releases>
                        <enabled>true</enabled>
                        <updatePolicy>never</updatePolicy>
                        <checksumPolicy>ignore</checksumPolicy>
                    </releases>
                    <snapshots>
                        <enabled>true</enabled>
                        <updatePolicy>never</updatePolicy>
                        <checksumPolicy>ignore</checksumPolicy>
                    </snapshots>
                </pluginRepository>
            </pluginRepositories>
        </profile>
    </profiles>

    <activeProfiles>
        <activeProfile>offline</activeProfile>
    </activeProfiles>
</settings>
`

// WriteOfflineSettings writes a settings.xml into the target repository that
// pins every resolution to the repository itself, with updates and checksum
// policing disabled. Returns the path written.
func WriteOfflineSettings(targetRepo string) (string, error) {
	abs, err := filepath.Abs(targetRepo)
	if err != nil {
		return "", fmt.Errorf("invalid target repository path: %w", err)
	}
	if mkErr := os.MkdirAll(abs, 0o755); mkErr != nil {
		return "", fmt.Errorf("failed to create target repository: %w", mkErr)
	}

	path := filepath.Join(abs, SettingsFileName)
	content := fmt.Sprintf(settingsTemplate, filepath.ToSlash(abs))
	if writeErr := os.WriteFile(path, []byte(content), 0o644); writeErr != nil {
		return "", fmt.Errorf("failed to write %s: %w", SettingsFileName, writeErr)
	}
	return path, nil
}
