// leveltool inspects level definitions and imports levels from an asset tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Faultbox/m64vr/internal/assets"
	"github.com/Faultbox/m64vr/internal/config"
	"github.com/Faultbox/m64vr/internal/convert"
	"github.com/Faultbox/m64vr/internal/engine/model"
	"github.com/Faultbox/m64vr/internal/engine/scene"
	"github.com/Faultbox/m64vr/internal/engine/texture"
	"github.com/Faultbox/m64vr/internal/levels"
	"github.com/Faultbox/m64vr/internal/logger"
	"github.com/Faultbox/m64vr/pkg/formats"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	switch command {
	case "list", "ls":
		err = cmdList(cfg)
	case "show":
		err = cmdShow(cfg, args)
	case "import":
		err = cmdImport(cfg, args)
	case "status":
		err = cmdStatus(cfg)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`leveltool - level definition and import utility

Usage:
  leveltool [flags] <command> [args]

Commands:
  list                 List known levels
  show <level>         Show a level definition
  import <level>       Import a level and print mesh statistics
  status               Show texture conversion status of the asset root
  config [path]        Write the effective config (default: user config dir)

Flags:
  -config <file>       Config file
  -assets <dir>        Level asset root
  -keys <file>         Transparency key table
  -levels <file>       Extra level definitions (YAML)
  -format png|webp     Converted texture format
  -debug               Debug logging

Examples:
  leveltool list
  leveltool -assets M64_Levels import "Bob-omb Battlefield"
  leveltool -levels mylevels.yaml show "Castle Exterior"`)
}

func loadRegistry(cfg *config.Config) (*levels.Registry, error) {
	reg := levels.Builtin()
	if cfg.Data.LevelsFile == "" {
		return reg, nil
	}
	extra, err := levels.LoadFile(cfg.Data.LevelsFile)
	if err != nil {
		return nil, err
	}
	return reg.Merge(extra), nil
}

func lookupLevel(cfg *config.Config, args []string, usage string) (*levels.LevelDef, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: leveltool %s <level>", usage)
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	name := strings.Join(args, " ")
	def, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown level %q (see leveltool list)", name)
	}
	return def, nil
}

func cmdList(cfg *config.Config) error {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tASSET\tSCALE\tINDOOR\tLINK")
	for _, name := range reg.Names() {
		def, _ := reg.Lookup(name)
		link := "-"
		if def.Link != nil {
			link = fmt.Sprint(def.Link.Asset)
		}
		fmt.Fprintf(w, "%s\t%d\t%g\t%v\t%s\n", def.Name, def.Asset, def.EffectiveScale(), def.Indoor, link)
	}
	return w.Flush()
}

func cmdShow(cfg *config.Config, args []string) error {
	def, err := lookupLevel(cfg, args, "show")
	if err != nil {
		return err
	}
	filter, err := def.Filter()
	if err != nil {
		return err
	}

	fmt.Printf("Level:     %s\n", def.Name)
	fmt.Printf("Asset:     %d\n", def.Asset)
	fmt.Printf("Viewpoint: (%g, %g, %g)\n", def.Viewpoint.X, def.Viewpoint.Y, def.Viewpoint.Z)
	fmt.Printf("Scale:     %g\n", def.EffectiveScale())
	fmt.Printf("Indoor:    %v\n", def.Indoor)
	fmt.Printf("Exclude:   %s (%d materials)\n", formatRules(def.Exclude), filter.Len())
	if def.Link != nil {
		linkFilter, err := def.LinkFilter()
		if err != nil {
			return err
		}
		fmt.Printf("Link:      asset %d, exclude %s (%d materials)\n",
			def.Link.Asset, formatRules(def.Link.Exclude), linkFilter.Len())
	}
	return nil
}

// formatRules prints exclusion rules in canonical form. Rules were validated
// when the registry was built.
func formatRules(exprs []string) string {
	if len(exprs) == 0 {
		return "-"
	}
	out := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		r, err := formats.ParseMaterialRange(expr)
		if err != nil {
			out = append(out, expr)
			continue
		}
		out = append(out, r.String())
	}
	return strings.Join(out, ", ")
}

func cmdImport(cfg *config.Config, args []string) error {
	def, err := lookupLevel(cfg, args, "import")
	if err != nil {
		return err
	}

	keys, err := formats.LoadKeyTable(cfg.Data.KeyTable)
	if err != nil {
		return err
	}

	mgr := assets.NewManager(cfg.Data.TextureFormat)
	if err := mgr.AddDir(cfg.Data.AssetRoot); err != nil {
		return err
	}

	start := time.Now()
	s, err := scene.NewLoader(mgr, texture.NewLoader(mgr, keys)).Load(def)
	if err != nil {
		return err
	}

	fmt.Printf("Level %s imported in %v\n", s.Name, time.Since(start).Round(time.Millisecond))
	printMesh("main", s.Main)
	if s.Link != nil {
		printMesh("link", s.Link)
	}
	return nil
}

func printMesh(label string, m *model.Mesh) {
	size := m.Bounds.Size()
	fmt.Printf("\n[%s] %d vertices, %d uvs, %d submeshes, %d triangles\n",
		label, len(m.Vertices), len(m.UVs), len(m.Submeshes), m.TotalTriangles())
	fmt.Printf("  bounds %.2f x %.2f x %.2f\n", size.X, size.Y, size.Z)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  MATERIAL\tTRIANGLES\tSHADER\tSIZE")
	for i := range m.Submeshes {
		sm := &m.Submeshes[i]
		b := sm.Material.Image.Bounds()
		fmt.Fprintf(w, "  %d\t%d\t%s\t%dx%d\n", sm.Material.ID, sm.TriangleCount(), sm.Material.Shader, b.Dx(), b.Dy())
	}
	w.Flush()
}

func cmdStatus(cfg *config.Config) error {
	m, err := convert.ReadManifest(cfg.Data.AssetRoot)
	if err != nil {
		return err
	}

	fmt.Printf("Root:      %s\n", cfg.Data.AssetRoot)
	fmt.Printf("Status:    %s\n", m.Status)
	if m.Status == convert.NotConverted {
		return nil
	}
	fmt.Printf("Format:    %s\n", m.Format)
	fmt.Printf("Converted: %d (%d keyed)\n", m.Converted, m.Keyed)
	fmt.Printf("Finished:  %s\n", m.Finished.Local().Format(time.DateTime))
	if m.Error != "" {
		fmt.Printf("Error:     %s\n", m.Error)
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", args[0])
		return nil
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Config written to %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	return nil
}
