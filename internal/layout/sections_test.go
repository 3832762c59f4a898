package layout

import (
	"testing"

	"resumin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSkills(t *testing.T) {
	t.Parallel()

	skills := []models.Skill{
		{Name: "Go", Level: models.SkillExpert, Category: models.SkillTechnical},
		{Name: "Kubernetes", Level: models.SkillIntermediate, Category: models.SkillTool},
		{Name: "Mentoring", Level: models.SkillAdvanced, Category: models.SkillSoft},
		{Name: "Terraform", Level: models.SkillBeginner, Category: models.SkillTool},
	}

	t.Run("bars carry width and color from the level table", func(t *testing.T) {
		t.Parallel()

		block := renderSkills(skills, models.SkillsBars)
		require.Len(t, block.Bars, 4)
		assert.Equal(t, 100, block.Bars[0].WidthPercent)
		assert.Equal(t, "green", block.Bars[0].Color)
		assert.Equal(t, 50, block.Bars[1].WidthPercent)
		assert.Equal(t, 25, block.Bars[3].WidthPercent)
		assert.Empty(t, block.Tags)
	})

	t.Run("list groups by category in first-seen order", func(t *testing.T) {
		t.Parallel()

		block := renderSkills(skills, models.SkillsList)
		require.Len(t, block.Groups, 3)
		assert.Equal(t, models.SkillTechnical, block.Groups[0].Category)
		assert.Equal(t, models.SkillTool, block.Groups[1].Category)
		assert.Equal(t, []string{"Kubernetes", "Terraform"}, block.Groups[1].Names)
		assert.Equal(t, models.SkillSoft, block.Groups[2].Category)
	})

	t.Run("unknown level renders as beginner", func(t *testing.T) {
		t.Parallel()

		block := renderSkills([]models.Skill{{Name: "X", Level: "wizard"}}, models.SkillsBars)
		require.Len(t, block.Bars, 1)
		assert.Equal(t, 25, block.Bars[0].WidthPercent)
	})

	t.Run("unknown category keeps raw name as label", func(t *testing.T) {
		t.Parallel()

		block := renderSkills([]models.Skill{{Name: "X", Category: "hobby"}}, models.SkillsList)
		require.Len(t, block.Groups, 1)
		assert.Equal(t, "hobby", block.Groups[0].Label)
	})
}

func TestRenderSocials(t *testing.T) {
	t.Parallel()

	links := renderSocials(map[string]string{
		"twitter":  "https://x.com/jane",
		"github":   "https://github.com/jane",
		"linkedin": "",
	})
	require.Len(t, links, 2, "empty URLs are dropped")
	assert.Equal(t, "github", links[0].Platform, "output is sorted for stability")
	assert.Equal(t, "twitter", links[1].Platform)
}

func TestSplitBullets(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitBullets("  \n "))
	assert.Equal(t,
		[]string{"Shipped the thing", "Deleted the other thing"},
		splitBullets("Shipped the thing\n\n  Deleted the other thing  \n"),
	)
}
