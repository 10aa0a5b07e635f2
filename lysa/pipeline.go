package lysa

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ConverterBinary is the default name of the external asset-pack
// converter; exec resolves the platform suffix.
const ConverterBinary = "gltf2lysa"

// MeshExportOptions is the flag set handed to the binary mesh exporter.
type MeshExportOptions struct {
	Format          string
	ImageQuality    int
	JPEGQuality     int
	Tangents        bool
	YUp             bool
	Animations      bool
	AnimSlideToZero bool
	Cameras         bool
	UnusedImages    bool
}

// DefaultMeshExportOptions returns the fixed flag set the host tool uses.
func DefaultMeshExportOptions() MeshExportOptions {
	return MeshExportOptions{
		Format:          "GLB",
		ImageQuality:    98,
		JPEGQuality:     98,
		Tangents:        true,
		YUp:             true,
		Animations:      true,
		AnimSlideToZero: true,
	}
}

// MeshExporter produces the binary asset bundle for a scene. An
// implementation must be deterministic for a given root set and write
// exactly one file at dest.
type MeshExporter interface {
	Export(ctx context.Context, roots []*SceneObject, dest string, opts MeshExportOptions) error
}

// Runner executes external converter processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner shells out, streaming converter output through.
type ExecRunner struct {
	Log *zap.SugaredLogger
}

// Run executes the named binary and waits for it.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if r.Log != nil {
		r.Log.Debugw("running converter", "cmd", name, "args", args)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// CommandExporter adapts an external mesh-exporter command to the
// MeshExporter contract. The command receives the destination path and
// the export flags; the scene itself lives in the host file the command
// reads.
type CommandExporter struct {
	Command string
	Source  string // host file the exporter reads
	Runner  Runner
}

// Export invokes the external exporter.
func (e CommandExporter) Export(ctx context.Context, _ []*SceneObject, dest string, opts MeshExportOptions) error {
	args := []string{
		e.Source, dest,
		"--format", opts.Format,
		"--image-quality", strconv.Itoa(opts.ImageQuality),
		"--jpeg-quality", strconv.Itoa(opts.JPEGQuality),
	}
	if opts.Tangents {
		args = append(args, "--tangents")
	}
	if opts.YUp {
		args = append(args, "--yup")
	}
	if opts.Animations {
		args = append(args, "--animations")
	}
	if opts.AnimSlideToZero {
		args = append(args, "--anim-slide-to-zero")
	}
	if !opts.Cameras {
		args = append(args, "--no-cameras")
	}
	if !opts.UnusedImages {
		args = append(args, "--no-unused-images")
	}
	return e.Runner.Run(ctx, e.Command, args...)
}

// OrchestrationError wraps the failure of one pipeline step. The documents
// assembled before the step remain valid.
type OrchestrationError struct {
	Step string
	Err  error
}

func (e *OrchestrationError) Error() string {
	return "export " + e.Step + ": " + e.Err.Error()
}

func (e *OrchestrationError) Unwrap() error { return e.Err }

// ErrNoMeshExporter is returned when an export needs the binary bundle but
// no exporter is configured.
var ErrNoMeshExporter = errors.New("no mesh exporter configured")

// Pipeline sequences one full export invocation: assemble documents, write
// them, invoke the mesh exporter, optionally pack and clean up.
type Pipeline struct {
	Settings Settings
	Exporter MeshExporter
	Runner   Runner
	Renderer Renderer
	// ConverterPath locates the asset-pack converter; defaults to
	// ConverterBinary.
	ConverterPath string
	Log           *zap.SugaredLogger
}

// NewPipeline builds a pipeline with the default renderer and runner.
func NewPipeline(settings Settings, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		Settings:      settings,
		Runner:        ExecRunner{Log: log},
		Renderer:      JSONRenderer{},
		ConverterPath: ConverterBinary,
		Log:           log,
	}
}

// Run exports roots for the host file at sourcePath. Document assembly
// completes before any external step runs, so a converter failure never
// leaves a half-written document behind.
func (p *Pipeline) Run(ctx context.Context, sourcePath string, roots []*SceneObject) error {
	s := p.Settings
	if err := s.Validate(sourcePath); err != nil {
		return err
	}
	if err := Validate(roots); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	opts := ExportOptions{
		ModelsDirectory:    s.ModelsDirectory,
		Basename:           base,
		Resources:          s.Resources,
		LinkFile:           s.LinkFile,
		ReconcileMeshNames: s.ReconcileMeshNames,
		ConvertAssets:      s.ConvertAssets,
	}
	scenePath := filepath.Join(s.ScenePath(), base+".json")
	manifestPath := filepath.Join(s.ModelsPath(), base+".json")
	binaryPath := filepath.Join(s.ModelsPath(), base+exportExt)

	if s.Export == ExportScene {
		doc, err := AssembleScene(roots, opts)
		if err != nil {
			return err
		}
		if err := p.writeDocument(scenePath, doc); err != nil {
			return &OrchestrationError{Step: "write scene document", Err: err}
		}
		p.Log.Infow("scene document written", "path", scenePath, "roots", len(doc.Nodes))
	}

	if s.Export == ExportResources || s.Resources == ResourceExport {
		if s.ResourcesDescription || s.Export == ExportScene {
			manifest := AssembleResources(roots, opts)
			if err := p.writeDocument(manifestPath, manifest); err != nil {
				return &OrchestrationError{Step: "write resource manifest", Err: err}
			}
			p.Log.Infow("resource manifest written", "path", manifestPath, "entries", len(manifest.Nodes))
		}
		if p.Exporter == nil {
			return &OrchestrationError{Step: "mesh export", Err: ErrNoMeshExporter}
		}
		if err := p.Exporter.Export(ctx, roots, binaryPath, DefaultMeshExportOptions()); err != nil {
			return &OrchestrationError{Step: "mesh export", Err: err}
		}
		p.Log.Infow("binary bundle exported", "path", binaryPath)
	}

	if s.ConvertAssets && s.Resources != ResourceLink {
		packPath := filepath.Join(s.ModelsPath(), base+assetsPackExt)
		args := []string{
			"-v",
			"-t", strconv.Itoa(s.Threads),
			"-f", string(s.Format),
			binaryPath,
			packPath,
		}
		if err := p.Runner.Run(ctx, p.ConverterPath, args...); err != nil {
			return &OrchestrationError{Step: "asset conversion", Err: err}
		}
		// The packed file supersedes the intermediate binary.
		if err := os.Remove(binaryPath); err != nil {
			return &OrchestrationError{Step: "cleanup", Err: err}
		}
		p.Log.Infow("assets packed", "path", packPath, "format", s.Format)
	}
	return nil
}

func (p *Pipeline) writeDocument(path string, doc any) error {
	data, err := p.Renderer.Render(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
