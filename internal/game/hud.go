package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"labyrinth/internal/threading/monitoring"
)

const (
	hudLineHeight = 14
	hudPadding    = 6
)

var hudPanel = color.RGBA{A: 160}

// hudLines formats the stats overlay.
func hudLines(s monitoring.Stats, fps, tps float64, collected, entities int, jobs uint64) []string {
	ms := func(st monitoring.Stage) string {
		return fmt.Sprintf("%5.2fms", float64(s.StageTime(st))/1e6)
	}
	return []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f", fps, tps),
		fmt.Sprintf("frame   %5.2fms", float64(s.AvgFrame)/1e6),
		"floor   " + ms(monitoring.StageFloor),
		"walls   " + ms(monitoring.StageWalls),
		"sprites " + ms(monitoring.StageSprites),
		"minimap " + ms(monitoring.StageMinimap),
		fmt.Sprintf("rays %d  sprites %d/%d", s.ColumnsCast, s.SpritesDrawn, s.SpritesDrawn+s.SpritesCulled),
		fmt.Sprintf("entities %d  collected %d", entities, collected),
		fmt.Sprintf("pool jobs %d", jobs),
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if !g.showStats {
		msg := fmt.Sprintf("Collected: %d", g.scene.Collected())
		ebitenutil.DebugPrintAt(screen, msg, hudPadding, hudPadding)
		return
	}
	lines := hudLines(g.scene.Monitor.Snapshot(), ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.scene.Collected(), g.scene.Entities.Len(), g.scene.PoolJobs())

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	// DebugPrint glyphs are 6 pixels wide
	w := float32(width*6 + 2*hudPadding)
	h := float32(len(lines)*hudLineHeight + 2*hudPadding)
	vector.DrawFilledRect(screen, 0, 0, w, h, hudPanel, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), hudPadding, hudPadding)
}
