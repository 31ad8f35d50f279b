package telegram

import "github.com/starkeae/divarkhaf-bot/internal/conversation"

// Main menu labels. The router matches inbound text against these.
const (
	menuUrgent    = "🔥 آگهی فوری"
	menuNewAd     = "➕ افزودن آگهی"
	menuBrowse    = "📢 آگهی ها"
	menuMyAds     = "📋 آگهی های من"
	menuSearch    = "🔍 جستجو"
	menuBookmarks = "⭐ نشان شده ها"
	menuContactUs = "📞 تماس با ما"
	menuHelp      = "❓ راهنما"
	menuAdmin     = "👑 پنل مدیریت"
)

const (
	urgentMenuAll     = "📢 همه آگهی های فوری"
	urgentMenuRequest = "✨ درخواست آگهی فوری"
)

const (
	adminMenuStats     = "📊 آمار کلی"
	adminMenuReports   = "🚫 گزارش های تخلف"
	adminMenuUrgent    = "✨ مدیریت آگهی های فوری"
	adminMenuRemoveAd  = "❌ حذف آگهی"
	adminMenuBroadcast = "📢 ارسال پیام همگانی"
	adminMenuUsers     = "👥 کاربران آنلاین"
	adminUrgentAdd     = "➕ افزودن آگهی فوری جدید"
	adminUrgentList    = "📋 لیست آگهی های فوری"
	adminBackToPanel   = "🔙 بازگشت به پنل مدیریت"
)

const helpText = "🔰 راهنمای استفاده از ربات دیوار خواف:\n\n" +
	"➕ افزودن آگهی جدید:\n" +
	"۱. روی دکمه 'افزودن آگهی' کلیک کنید\n" +
	"۲. دسته بندی مناسب را انتخاب کنید\n" +
	"۳. عنوان و توضیحات آگهی را وارد کنید\n" +
	"۴. عکس آگهی را ارسال کنید (اختیاری)\n" +
	"۵. قیمت و اطلاعات تماس را وارد کنید\n\n" +
	"🔍 جستجوی آگهی:\n" +
	"- از دکمه 'جستجو' استفاده کنید\n" +
	"- یا دسته بندی مورد نظر را انتخاب کنید\n\n" +
	"⭐️ نشان کردن آگهی:\n" +
	"- روی دکمه '⭐️' در زیر هر آگهی کلیک کنید\n\n" +
	"📞 تماس با فروشنده:\n" +
	"- از دکمه 'تماس' در زیر هر آگهی استفاده کنید\n\n" +
	"🚫 گزارش تخلف:\n" +
	"- از دکمه 'گزارش' در آگهی استفاده کنید"

const contactUsText = "📞 تماس با ما\n\n" +
	"برای ارتباط با مدیریت دیوار خواف:\n" +
	"@divarkhafadmin"

const urgentRequestText = "✨ درخواست آگهی فوری\n\n" +
	"برای ثبت آگهی فوری با ادمین دیوار خواف تماس بگیرید:\n" +
	"@divarkhafadmin\n\n" +
	"مزایای آگهی فوری:\n" +
	"🔸 نمایش در بخش ویژه\n" +
	"🔸 اولویت در جستجو\n" +
	"🔸 بازدید بیشتر\n" +
	"🔸 فروش سریعتر"

func mainMenuKeyboard(isAdmin bool) [][]string {
	rows := [][]string{
		{menuUrgent, menuNewAd},
		{menuBrowse, menuMyAds},
		{menuSearch, menuBookmarks},
		{menuContactUs, menuHelp},
	}
	if isAdmin {
		rows = append(rows, []string{menuAdmin})
	}
	return rows
}

func urgentMenuKeyboard() [][]string {
	return [][]string{
		{urgentMenuAll},
		{urgentMenuRequest},
		{conversation.LabelMainMenu},
	}
}

func adminMenuKeyboard() [][]string {
	return [][]string{
		{adminMenuStats, adminMenuReports},
		{adminMenuUrgent, adminMenuRemoveAd},
		{adminMenuBroadcast, adminMenuUsers},
		{conversation.LabelMainMenu},
	}
}

func adminUrgentKeyboard() [][]string {
	return [][]string{
		{adminUrgentAdd},
		{adminUrgentList},
		{adminBackToPanel},
	}
}
