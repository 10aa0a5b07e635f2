package lysa

import (
	"path"
	"path/filepath"
)

// ExportMode selects what an export invocation produces.
type ExportMode string

const (
	ExportScene     ExportMode = "scene"
	ExportResources ExportMode = "resources"
)

// ResourceMode selects how the scene document references its resources:
// export a manifest next to the models, or link to an existing one.
type ResourceMode string

const (
	ResourceExport ResourceMode = "export"
	ResourceLink   ResourceMode = "link"
)

// CompressionFormat enumerates the BCn texture formats of the asset-pack
// converter.
type CompressionFormat string

const (
	FormatBC1 CompressionFormat = "bc1"
	FormatBC2 CompressionFormat = "bc2"
	FormatBC3 CompressionFormat = "bc3"
	FormatBC7 CompressionFormat = "bc7"
)

const (
	exportExt     = ".glb"
	assetsPackExt = ".assets"
)

// ExportOptions carries the resolved settings document assembly needs.
type ExportOptions struct {
	// ModelsDirectory is the models resource directory relative to the
	// project, forward-slash separated.
	ModelsDirectory string
	// Basename is the source file name without directory or extension.
	Basename string
	// Resources picks manifest export vs linking to LinkFile.
	Resources ResourceMode
	// LinkFile is the manifest to include in link mode, relative to the
	// project directory.
	LinkFile string
	// ReconcileMeshNames strips trailing duplicate suffixes from mesh keys
	// so instances share one resource.
	ReconcileMeshNames bool
	// ConvertAssets selects the packed-asset suffix over the raw binary.
	ConvertAssets bool
}

// AssembleScene builds the scene document for roots: a single include
// pointing at the resource manifest, plus one node document per root.
func AssembleScene(roots []*SceneObject, opts ExportOptions) (*SceneDocument, error) {
	include := AppURI + filepath.ToSlash(opts.LinkFile)
	if opts.Resources != ResourceLink {
		include = AppURI + path.Join(filepath.ToSlash(opts.ModelsDirectory), opts.Basename+".json")
	}
	doc := &SceneDocument{Includes: []string{include}}
	for _, r := range roots {
		node, err := BuildNodeDocument(r, opts)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	return doc, nil
}

// AssembleResources builds the resource manifest for roots: the manifest's
// own resource record first, then one mesh entry per mesh object anywhere
// in the hierarchy.
func AssembleResources(roots []*SceneObject, opts ExportOptions) *ResourceManifest {
	ext := exportExt
	if opts.ConvertAssets {
		ext = assetsPackExt
	}
	uri := AppURI + path.Join(filepath.ToSlash(opts.ModelsDirectory), opts.Basename+ext)
	manifest := &ResourceManifest{
		Nodes: []ResourceEntry{{ID: ResourcesID, Type: EntryResource, Resource: uri}},
	}
	for _, r := range roots {
		manifest.Nodes = CollectResources(manifest.Nodes, r, "")
	}
	return manifest
}
