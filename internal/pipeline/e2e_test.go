package pipeline_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/pipeline"
	"github.com/san-kum/cellrender/internal/storage"
	"github.com/san-kum/cellrender/internal/video"
)

const snapshotText = "ID\ttypeID\tX\tY\tZ\tVx\tVy\tVz\tR\tN_contact\tContact_IDs\n" +
	"0\tWORKER\t0\t0\t0\t0\t0\t0\t2\t0\t_\n" +
	"1\tDEAD\t10\t10\t0\t0\t0\t0\t2\t0\t_\n" +
	"2\tNONE\t-20\t5\t0\t0\t0\t0\t2\t0\t_\n"

type fakeEncoder struct {
	width, height int
	fps           float64
	frames        int
	closed        bool
}

func (f *fakeEncoder) WriteFrame(image.Image) error { f.frames++; return nil }
func (f *fakeEncoder) Close() error                 { f.closed = true; return nil }

func decode(path string) *image.RGBA {
	f, err := os.Open(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	img, err := png.Decode(f)
	Expect(err).NotTo(HaveOccurred())
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		for y := 0; y < img.Bounds().Dy(); y++ {
			for x := 0; x < img.Bounds().Dx(); x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}
	return rgba
}

var _ = Describe("rendering a run end to end", func() {
	var (
		dir      string
		settings *config.Settings
		sim      config.SimConfig
		snaps    []string
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "cellrender-e2e")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		resultDir := filepath.Join(dir, "result")
		Expect(os.MkdirAll(resultDir, 0755)).To(Succeed())
		for _, id := range []string{"00000", "00001"} {
			Expect(os.WriteFile(filepath.Join(resultDir, id), []byte(snapshotText), 0644)).To(Succeed())
		}

		configTxt := filepath.Join(dir, "config.txt")
		Expect(os.WriteFile(configTxt, []byte("100\n100\n"), 0644)).To(Succeed())

		sim, err = config.LoadSimConfig(configTxt)
		Expect(err).NotTo(HaveOccurred())

		settings = config.DefaultSettings()
		settings.Paths.ImageDir = filepath.Join(dir, "image")
		settings.Paths.Images = filepath.Join(dir, "image", "cells_*.png")

		snaps, err = video.Discover(filepath.Join(resultDir, "*"))
		Expect(err).NotTo(HaveOccurred())
		Expect(snaps).To(HaveLen(2))
	})

	It("writes one image per snapshot with the visible cells drawn", func() {
		runner, err := pipeline.New(sim, settings, pipeline.Options{})
		Expect(err).NotTo(HaveOccurred())

		rep, err := runner.Run(context.Background(), snaps, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.Images).To(HaveLen(2))
		Expect(filepath.Base(rep.Images[0])).To(Equal("cells_00000.png"))
		Expect(filepath.Base(rep.Images[1])).To(Equal("cells_00001.png"))

		for _, st := range rep.Stats {
			Expect(st.Drawn).To(Equal(2))
			Expect(st.Hidden).To(Equal(1))
			Expect(st.Anomalies).To(BeZero())
		}

		img := decode(rep.Images[0])
		Expect(img.Bounds().Dx()).To(Equal(1024))
		Expect(img.Bounds().Dy()).To(Equal(1024))
		// radius 2 scales to 20px
		Expect(img.RGBAAt(512+20, 512)).To(Equal(color.RGBA{0, 200, 0, 255}))
		Expect(img.RGBAAt(614+20, 614)).To(Equal(color.RGBA{0, 0, 0, 255}))
		Expect(img.RGBAAt(512, 512)).To(Equal(color.RGBA{255, 255, 255, 255}))
	})

	It("assembles the frames into a 20 fps video", func() {
		runner, err := pipeline.New(sim, settings, pipeline.Options{})
		Expect(err).NotTo(HaveOccurred())
		_, err = runner.Run(context.Background(), snaps, nil)
		Expect(err).NotTo(HaveOccurred())

		frames, err := video.Discover(settings.Paths.Images)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(2))

		enc := &fakeEncoder{}
		asm := &video.Assembler{
			FPS: settings.FPS,
			Open: func(path string, w, h int, fps float64) (video.Encoder, error) {
				enc.width, enc.height, enc.fps = w, h, fps
				return enc, nil
			},
		}
		res, err := asm.Assemble(context.Background(), frames, filepath.Join(dir, "video", "out.mp4"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(2))
		Expect(res.Truncated).To(BeFalse())
		Expect(enc.frames).To(Equal(2))
		Expect(enc.closed).To(BeTrue())
		Expect(enc.width).To(Equal(1024))
		Expect(enc.height).To(Equal(1024))
		Expect(enc.fps).To(BeNumerically("==", 20))
	})

	It("records the run next to its images", func() {
		runner, err := pipeline.New(sim, settings, pipeline.Options{})
		Expect(err).NotTo(HaveOccurred())
		rep, err := runner.Run(context.Background(), snaps, nil)
		Expect(err).NotTo(HaveOccurred())

		st := storage.New(settings.Paths.ImageDir)
		Expect(st.Save(&storage.Manifest{
			Sim:       sim,
			Settings:  *settings,
			Snapshots: snaps,
			Frames:    len(rep.Images),
		}, rep.Stats)).To(Succeed())

		rows, err := st.LoadStats()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal(rep.Stats))
	})
})
