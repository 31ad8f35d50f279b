package conversation

import "github.com/starkeae/divarkhaf-bot/internal/listing/domain"

// Keyboard labels shared between the machines (which render them) and the
// transport boundary (which maps them back to typed intents).
const (
	LabelMainMenu   = "🔙 بازگشت به منوی اصلی"
	LabelFinish     = "✅ پایان"
	LabelMorePhotos = "📸 عکس بیشتر"
	LabelSubmit     = "✅ ثبت آگهی"
	LabelCancel     = "❌ انصراف"
	CommandSkip     = "/skip"
	CommandCancel   = "/cancel"
)

var categoryLabels = map[domain.Category]string{
	domain.CategoryRealEstate:     "🏠 املاک",
	domain.CategoryDigital:        "📱 دیجیتال",
	domain.CategoryClothing:       "👕 لباس",
	domain.CategoryVehicles:       "🚗 وسایل نقلیه",
	domain.CategoryHomeAppliances: "🏠 لوازم خانگی",
	domain.CategoryServices:       "💼 خدمات",
	domain.CategoryJobs:           "💼 استخدام و کاریابی",
	domain.CategoryEntertainment:  "🎮 سرگرمی و فراغت",
	domain.CategoryBaby:           "👶 کودک و نوزاد",
	domain.CategoryPets:           "🐱 حیوانات",
}

var labelCategories = func() map[string]domain.Category {
	m := make(map[string]domain.Category, len(categoryLabels))
	for category, label := range categoryLabels {
		m[label] = category
	}
	return m
}()

// CategoryLabel returns the display label for a category code.
func CategoryLabel(category domain.Category) string {
	return categoryLabels[category]
}

// CategoryFromLabel maps a keyboard label back to its category code.
func CategoryFromLabel(label string) (domain.Category, bool) {
	category, ok := labelCategories[label]
	return category, ok
}

// CategoryKeyboard lays the category labels out two per row, with a
// back-to-menu row appended.
func CategoryKeyboard() [][]string {
	var rows [][]string
	var row []string
	for _, category := range domain.Categories() {
		row = append(row, categoryLabels[category])
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []string{LabelMainMenu})
	return rows
}
