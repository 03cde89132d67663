package dedup

import (
	"testing"

	"github.com/assetdesk/metagen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func result(index int, english, arabic string) domain.TaskResult {
	return domain.TaskResult{
		Index:       index,
		Status:      domain.ResultStatusOK,
		EnglishName: english,
		ArabicName:  arabic,
	}
}

func TestApplySuffixes_DistinctNamesUntouched(t *testing.T) {
	results := []domain.TaskResult{
		result(0, "Corporate Building", "مبنى مؤسسي"),
		result(1, "Market Chart", "مخطط السوق"),
	}

	got := ApplySuffixes(results)

	assert.Equal(t, "Corporate Building", got[0].EnglishName)
	assert.Equal(t, "Market Chart", got[1].EnglishName)
}

func TestApplySuffixes_DuplicatesNumberedInOrder(t *testing.T) {
	results := []domain.TaskResult{
		result(0, "Cover Slide", "شريحة غلاف"),
		result(1, "Cover Slide", "شريحة غلاف"),
		result(2, "Cover Slide", "شريحة غلاف"),
	}

	got := ApplySuffixes(results)

	assert.Equal(t, "Cover Slide - 001", got[0].EnglishName)
	assert.Equal(t, "Cover Slide - 002", got[1].EnglishName)
	assert.Equal(t, "Cover Slide - 003", got[2].EnglishName)
	assert.Equal(t, "شريحة غلاف - 001", got[0].ArabicName)
	assert.Equal(t, "شريحة غلاف - 003", got[2].ArabicName)
}

func TestApplySuffixes_CaseAndSpacingCollide(t *testing.T) {
	results := []domain.TaskResult{
		result(0, "Data  Chart", ""),
		result(1, "data chart", ""),
	}

	got := ApplySuffixes(results)

	assert.Equal(t, "Data Chart - 001", got[0].EnglishName)
	assert.Equal(t, "data chart - 002", got[1].EnglishName)
}

func TestApplySuffixes_ArabicVariantsCollide(t *testing.T) {
	// Alef-with-hamza vs bare alef and teh marbuta vs heh should compare
	// equal after folding.
	results := []domain.TaskResult{
		result(0, "", "أصل الشركة"),
		result(1, "", "اصل الشركه"),
	}

	got := ApplySuffixes(results)

	assert.Equal(t, "أصل الشركة - 001", got[0].ArabicName)
	assert.Equal(t, "اصل الشركه - 002", got[1].ArabicName)
}

func TestApplySuffixes_EmptyNamesLeftAlone(t *testing.T) {
	results := []domain.TaskResult{
		result(0, "", ""),
		result(1, "", ""),
	}

	got := ApplySuffixes(results)

	assert.Empty(t, got[0].EnglishName)
	assert.Empty(t, got[1].EnglishName)
}

func TestApplySuffixes_PreservesOrderAndOtherFields(t *testing.T) {
	results := []domain.TaskResult{
		result(0, "Icon", ""),
		{Index: 1, Status: domain.ResultStatusFailed, FailureCode: domain.FailureService, FailureMessage: "boom"},
		result(2, "Icon", ""),
	}

	got := ApplySuffixes(results)

	assert.Equal(t, 1, got[1].Index)
	assert.True(t, got[1].Failed())
	assert.Equal(t, "boom", got[1].FailureMessage)
	assert.Equal(t, "Icon - 001", got[0].EnglishName)
	assert.Equal(t, "Icon - 002", got[2].EnglishName)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, normalizeKey("Data  Chart"), normalizeKey("data chart"))
	assert.Equal(t, normalizeKey("أصل"), normalizeKey("اصل"))
	assert.Equal(t, "chart 1", normalizeKey("Chart ١"))
	assert.Empty(t, normalizeKey("   "))
}
