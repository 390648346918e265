// Package pom extracts managed versions, scopes and plugin declarations from
// the build tool's effective-configuration output. The result only annotates
// and explains the dependency graph; the tree parser stays authoritative for
// what was actually used.
package pom

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
)

type xmlDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

type xmlPlugin struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type xmlProject struct {
	DependencyManagement struct {
		Dependencies []xmlDependency `xml:"dependencies>dependency"`
	} `xml:"dependencyManagement"`
	Dependencies []xmlDependency `xml:"dependencies>dependency"`
	Build        struct {
		Plugins          []xmlPlugin `xml:"plugins>plugin"`
		PluginManagement struct {
			Plugins []xmlPlugin `xml:"plugins>plugin"`
		} `xml:"pluginManagement"`
	} `xml:"build"`
	Reporting struct {
		Plugins []xmlPlugin `xml:"plugins>plugin"`
	} `xml:"reporting"`
}

type xmlProjects struct {
	Projects []xmlProject `xml:"project"`
}

// defaultPluginGroup is assumed when a plugin omits its groupId.
const defaultPluginGroup = "org.apache.maven.plugins"

// Extract parses effective-configuration XML into a ManagedSet. Both a single
// <project> document and the aggregated <projects> form of multi-module
// builds are accepted.
func Extract(data []byte) (entities.ManagedSet, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}

	var projects []xmlProject
	switch root {
	case "projects":
		var agg xmlProjects
		if unmarshalErr := xml.Unmarshal(data, &agg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse effective model: %w", unmarshalErr)
		}
		projects = agg.Projects
	case "project":
		var p xmlProject
		if unmarshalErr := xml.Unmarshal(data, &p); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse effective model: %w", unmarshalErr)
		}
		projects = []xmlProject{p}
	default:
		return nil, fmt.Errorf("unexpected root element %q in effective model", root)
	}

	set := make(entities.ManagedSet)
	for _, p := range projects {
		collectProject(set, p)
	}
	return set, nil
}

func rootElement(data []byte) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", fmt.Errorf("effective model is not well-formed XML: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func collectProject(set entities.ManagedSet, p xmlProject) {
	for _, d := range p.DependencyManagement.Dependencies {
		addDependency(set, d)
	}
	for _, d := range p.Dependencies {
		addDependency(set, d)
	}
	for _, pl := range p.Build.Plugins {
		addPlugin(set, pl)
	}
	for _, pl := range p.Build.PluginManagement.Plugins {
		addPlugin(set, pl)
	}
	for _, pl := range p.Reporting.Plugins {
		addPlugin(set, pl)
	}
}

func addDependency(set entities.ManagedSet, d xmlDependency) {
	if d.GroupID == "" || d.ArtifactID == "" {
		return
	}
	set.Merge(entities.ManagedEntry{
		GA:               d.GroupID + ":" + d.ArtifactID,
		Version:          strings.TrimSpace(d.Version),
		Scope:            entities.Scope(strings.TrimSpace(d.Scope)),
		Optional:         strings.EqualFold(strings.TrimSpace(d.Optional), "true"),
		FromDependencies: true,
	})
}

func addPlugin(set entities.ManagedSet, pl xmlPlugin) {
	group := pl.GroupID
	if group == "" {
		group = defaultPluginGroup
	}
	if pl.ArtifactID == "" {
		return
	}
	set.Merge(entities.ManagedEntry{
		GA:          group + ":" + pl.ArtifactID,
		Version:     strings.TrimSpace(pl.Version),
		FromPlugins: true,
	})
}
