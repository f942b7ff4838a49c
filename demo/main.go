package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorustyt/gowalkmesh/common/logger"
	"github.com/gorustyt/gowalkmesh/common/rw"
	"github.com/gorustyt/gowalkmesh/debug_utils"
	"github.com/gorustyt/gowalkmesh/demo/config"
	"github.com/gorustyt/gowalkmesh/walkmesh"
	"github.com/gorustyt/gowalkmesh/walkmesh_agent"
	"go.uber.org/zap"
)

// Agents closer than this at the end of the run are reported as touching.
const contactRadius = 0.5

func main() {
	cfgPath := flag.String("config", "", "YAML config file; built in defaults when empty")
	ticks := flag.Int("ticks", -1, "number of ticks to simulate, overrides the config")
	out := flag.String("out", "", "output directory, overrides the config")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *ticks >= 0 {
		cfg.Ticks = *ticks
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("demo failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// run builds the mesh, walks the crowd through the configured ticks and
// writes the snapshots and the debug image to cfg.Output.Dir.
func run(cfg *config.Config, log *zap.Logger) error {
	mesh, err := walkmesh.BuildMesh(cfg.Mesh.MeshData())
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}
	log.Info("walk mesh built",
		zap.String("profile", cfg.Mesh.Profile.Desc()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("boundaryEdges", len(mesh.BoundaryEdges())))

	crowd := walkmesh_agent.NewCrowd(mesh, log)
	for _, a := range cfg.Agents {
		if _, err := crowd.AddAgent(a.Params()); err != nil {
			return err
		}
	}

	for tick := 0; tick < cfg.Ticks; tick++ {
		for i, ac := range cfg.Agents {
			agent := crowd.Agents()[i]
			controls, turn := ac.ControlsAt(tick)
			agent.Controls = controls
			if turn != 0 {
				agent.Turn(turn)
			}
		}
		if err := crowd.Update(cfg.TickSeconds); err != nil {
			log.Error("tick failed", zap.Int("tick", tick), zap.Error(err))
		}
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	return writeOutputs(cfg, crowd, log)
}

func writeOutputs(cfg *config.Config, crowd *walkmesh_agent.Crowd, log *zap.Logger) error {
	mesh := crowd.GetMesh()
	data := mesh.Data()
	obj := rw.NewBinWriter()
	if err := debug_utils.DumpWalkMeshToObj(mesh, obj); err != nil {
		return err
	}

	var trails []debug_utils.Trail
	for i, a := range crowd.Agents() {
		pos := a.GetPos()
		log.Info("agent finished",
			zap.String("agent", a.Name),
			zap.Float32s("pos", pos[:]),
			zap.Int("trail", len(a.Trail())))
		trails = append(trails, debug_utils.Trail{Points: a.Trail(), Color: debug_utils.DuIntToCol(i+1, 255)})
		if near := crowd.AgentsNear(pos, contactRadius); len(near) > 1 {
			log.Info("agents in contact", zap.String("agent", a.Name), zap.Int("count", len(near)-1))
		}
	}
	img := debug_utils.DrawWalkMesh(mesh, trails, debug_utils.DrawParams{
		Size:        cfg.Output.ImageSize,
		Supersample: cfg.Output.Supersample,
		Margin:      8,
		LineWidth:   2,
	})

	files := []struct {
		name string
		data []byte
	}{
		{"walkmesh.bin", data.ToBin()},
		{"walkmesh.pb", data.ToProto()},
		{"walkmesh.obj", obj.GetWriteBytes()},
	}
	for _, f := range files {
		path := filepath.Join(cfg.Output.Dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return err
		}
		log.Info("wrote", zap.String("path", path), zap.Int("bytes", len(f.data)))
	}

	path := filepath.Join(cfg.Output.Dir, "walkmesh.webp")
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := debug_utils.WriteWebP(fp, img); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	log.Info("wrote", zap.String("path", path))
	return nil
}
