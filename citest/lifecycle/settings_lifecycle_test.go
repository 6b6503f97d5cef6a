package lifecycle_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/neight-app/neight/citest/testutil"
	"github.com/neight-app/neight/internal/app"
	"github.com/neight-app/neight/internal/config"
	"github.com/neight-app/neight/internal/event"
)

var _ = Describe("Settings Lifecycle", func() {
	var layout *testutil.SettingsLayout

	BeforeEach(func() {
		var err error
		layout, err = testutil.NewSettingsLayout()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		layout.Cleanup()
		event.Reset()
	})

	Describe("Across application runs", func() {
		It("starts with defaults and persists a preference change", func() {
			first := app.New(layout.NewStore())
			prefs := first.Preferences()
			Expect(prefs.FontSize).To(Equal(12))
			Expect(prefs.WordWrap).To(BeTrue())

			prefs.FontFamily = "Iosevka"
			prefs.FontSize = 16
			first.SetPreferences(prefs)
			first.Shutdown()

			second := app.New(layout.NewStore())
			defer second.Shutdown()
			Expect(second.Preferences().FontFamily).To(Equal("Iosevka"))
			Expect(second.Preferences().FontSize).To(Equal(16))
		})

		It("migrates a legacy config file once", func() {
			legacy := layout.Candidates().Legacy[0]
			Expect(layout.WriteJSON(legacy, map[string]any{
				"font_family": "Courier New",
				"font_size":   14,
			})).To(Succeed())

			first := app.New(layout.NewStore())
			Expect(first.Preferences().FontFamily).To(Equal("Courier New"))
			Expect(first.Preferences().FontSize).To(Equal(14))
			first.Shutdown()

			// The legacy file is gone, its content lives on in settings.json.
			_, err := os.Stat(legacy)
			Expect(os.IsNotExist(err)).To(BeTrue())

			second := app.New(layout.NewStore())
			defer second.Shutdown()
			Expect(second.Preferences().FontFamily).To(Equal("Courier New"))
		})

		It("keeps working when the install directory stops accepting writes", func() {
			first := app.New(layout.NewStore())
			Expect(layout.BlockProgramDir()).To(Succeed())

			prefs := first.Preferences()
			prefs.FontFamily = "Iosevka"
			prefs.FontSize = 18
			first.SetPreferences(prefs)
			Expect(first.ActiveSettingsPath()).To(Equal(layout.Candidates().Fallback))
			first.Shutdown()

			// The next run finds the document in the fallback location.
			second := app.New(layout.NewStore())
			defer second.Shutdown()
			Expect(second.ActiveSettingsPath()).To(Equal(layout.Candidates().Fallback))
			Expect(second.Preferences().FontSize).To(Equal(18))
		})

		It("reopens the file from the previous session", func() {
			note := filepath.Join(layout.BaseDir, "note.txt")

			first := app.New(layout.NewStore())
			Expect(first.OpenOrCreate(note)).To(Succeed())
			first.Document().AppendLine("remember me")
			Expect(first.SaveDocument()).To(Succeed())
			first.Shutdown()

			second := app.New(layout.NewStore())
			defer second.Shutdown()
			path, ok := second.OpenLastFile()
			Expect(ok).To(BeTrue())
			Expect(path).To(Equal(note))
			Expect(second.Document().Text()).To(Equal("remember me\n"))
		})

		It("autosaves a modified buffer in the background", func() {
			note := filepath.Join(layout.BaseDir, "note.txt")

			a := app.New(layout.NewStore())
			defer a.Shutdown()
			Expect(a.OpenOrCreate(note)).To(Succeed())
			a.Document().SetText("draft in progress\n")

			a.Autosave().SetIntervalDuration(30 * time.Millisecond)

			Eventually(func() (string, error) {
				data, err := os.ReadFile(note)
				return string(data), err
			}, 3*time.Second, 25*time.Millisecond).Should(Equal("draft in progress\n"))
		})
	})

	Describe("The settings document on disk", func() {
		It("records a font size change for the next run to read back", func() {
			store := layout.NewStore()
			doc := store.Load()
			Expect(doc).To(BeEmpty())

			doc["font_size"] = 14
			store.Save(doc)

			onDisk, err := layout.ReadJSON(store.ActivePath())
			Expect(err).NotTo(HaveOccurred())
			Expect(onDisk).To(HaveKeyWithValue("font_size", float64(14)))

			// The user picks 16 in a later run; only that key moves.
			next := layout.NewStore()
			doc = next.Load()
			Expect(doc).To(HaveKeyWithValue("font_size", float64(14)))
			doc["font_size"] = 16
			next.Save(doc)

			onDisk, err = layout.ReadJSON(next.ActivePath())
			Expect(err).NotTo(HaveOccurred())
			Expect(onDisk).To(HaveKeyWithValue("font_size", float64(16)))
		})

		It("survives a corrupt settings file without touching it", func() {
			primary := layout.Candidates().Primary
			Expect(layout.WriteFile(primary, []byte("{not json"))).To(Succeed())

			a := app.New(layout.NewStore())
			defer a.Shutdown()
			Expect(a.Preferences().FontSize).To(Equal(12))

			// Nothing rewrote the broken file behind the user's back.
			data, err := os.ReadFile(primary)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("{not json"))
		})

		It("announces the new location when a save retargets", func() {
			a := app.New(layout.NewStore())
			defer a.Shutdown()

			retargeted := make(chan event.SettingsRetargetedData, 1)
			unsub := event.Subscribe(event.SettingsRetargeted, func(e event.Event) {
				if data, ok := e.Data.(event.SettingsRetargetedData); ok {
					select {
					case retargeted <- data:
					default:
					}
				}
			})
			defer unsub()

			Expect(layout.BlockProgramDir()).To(Succeed())
			a.SetAutosaveInterval(2)

			var data event.SettingsRetargetedData
			Eventually(retargeted, 2*time.Second).Should(Receive(&data))
			Expect(data.From).To(Equal(layout.Candidates().Primary))
			Expect(data.To).To(Equal(layout.Candidates().Fallback))
		})

		It("resolves the fallback when only the fallback has a document", func() {
			fallback := layout.Candidates().Fallback
			Expect(layout.WriteJSON(fallback, map[string]any{"word_wrap": false})).To(Succeed())

			res := config.Resolve(layout.Candidates())
			Expect(res.Active).To(Equal(fallback))
			Expect(res.Rule).To(Equal(config.RuleFallbackExists))

			a := app.New(layout.NewStore())
			defer a.Shutdown()
			Expect(a.Preferences().WordWrap).To(BeFalse())
		})
	})
})
