package views

import "github.com/eringen/folio/content"

var texts = map[content.Lang]map[string]string{
	content.Arabic: {
		"nav_home":       "الرئيسية",
		"nav_resume":     "السيرة الذاتية",
		"nav_portfolio":  "الأعمال",
		"nav_contact":    "تواصل",
		"btn_projects":   "أعمالي",
		"btn_contact":    "تواصل",
		"btn_save":       "حفظ",
		"btn_restore":    "استعادة",
		"btn_email":      "إرسال",
		"btn_logout":     "خروج",
		"btn_add":        "إضافة",
		"btn_edit":       "تعديل",
		"btn_delete":     "حذف",
		"btn_cancel":     "إلغاء",
		"btn_confirm":    "نعم، احذف",
		"btn_save_local": "حفظ التغييرات",
		"btn_login":      "دخول",
		"btn_view":       "عرض",
		"btn_images":     "الصور",
		"btn_profile":    "الملف الشخصي",
		"btn_pdf":        "تحميل PDF",
		"move_up":        "تحريك لأعلى",
		"move_down":      "تحريك لأسفل",
		"drag":           "سحب للترتيب",
		"sec_resume":     "الخبرات والتعليم",
		"sec_exp":        "الخبرات",
		"sec_skills":     "المهارات",
		"sec_certs":      "الشهادات",
		"sec_projects":   "المشاريع",
		"sec_custom":     "قسم إضافي",
		"contact_title":  "راسلني",
		"contact_name":   "الاسم",
		"contact_email":  "البريد الإلكتروني",
		"contact_msg":    "الرسالة",
		"form_new":       "إضافة بيانات جديدة",
		"form_edit":      "تعديل البيانات",
		"confirm_title":  "هل أنت متأكد؟",
		"confirm_text":   "لن تتمكن من التراجع عن الحذف!",
		"login_title":    "دخول المالك",
		"login_repo":     "المستودع (user/repo)",
		"login_token":    "رمز الوصول",
		"login_missing":  "الرجاء إدخال البيانات كاملة",
		"login_limited":  "محاولات كثيرة، حاول لاحقاً",
		"not_found":      "الصفحة غير موجودة",
		"server_error":   "حدث خطأ في الخادم",
		"load_failed":    "خطأ في تحميل البيانات",
		"back_home":      "العودة للرئيسية",
		"image_url":      "رابط الصورة",
		"upload":         "رفع",
		"greet_m":        "صباح الخير ☀️",
		"greet_a":        "مساء الخير 🌤️",
		"greet_e":        "مساء النور 🌙",
		"lang_toggle":    "EN",
		"theme_toggle":   "المظهر",
		"admin_mode":     "وضع المدير",
		"flash_expired":  "انتهت الجلسة، الرجاء الدخول مجدداً",
		"flash_saved":    "تم الحفظ بنجاح",
		"flash_failed":   "فشل الحفظ",
		"flash_busy":     "عملية حفظ أخرى قيد التنفيذ",
		"flash_auth":     "تعذر الوصول إلى المستودع",
		"flash_restored": "تمت استعادة النسخة الاحتياطية",
		"flash_nobackup": "لا توجد نسخة احتياطية",
		"flash_deleted":  "تم الحذف",
		"flash_updated":  "تم تحديث البيانات",
		"flash_sent":     "تم إرسال رسالتك",
		"flash_unsent":   "تعذر إرسال الرسالة",
		"flash_uploaded": "تم رفع الصورة",
		"flash_welcome":  "مرحباً بعودتك",
	},
	content.English: {
		"nav_home":       "Home",
		"nav_resume":     "Resume",
		"nav_portfolio":  "Portfolio",
		"nav_contact":    "Contact",
		"btn_projects":   "My Work",
		"btn_contact":    "Contact",
		"btn_save":       "Save",
		"btn_restore":    "Restore",
		"btn_email":      "Send",
		"btn_logout":     "Logout",
		"btn_add":        "Add",
		"btn_edit":       "Edit",
		"btn_delete":     "Delete",
		"btn_cancel":     "Cancel",
		"btn_confirm":    "Yes, delete",
		"btn_save_local": "Save changes",
		"btn_login":      "Login",
		"btn_view":       "View",
		"btn_images":     "Images",
		"btn_profile":    "Profile",
		"btn_pdf":        "Download PDF",
		"move_up":        "Move up",
		"move_down":      "Move down",
		"drag":           "Drag to reorder",
		"sec_resume":     "Resume & Education",
		"sec_exp":        "Experience",
		"sec_skills":     "Skills",
		"sec_certs":      "Certificates",
		"sec_projects":   "Projects",
		"sec_custom":     "More",
		"contact_title":  "Get in Touch",
		"contact_name":   "Name",
		"contact_email":  "Email",
		"contact_msg":    "Message",
		"form_new":       "Add new entry",
		"form_edit":      "Edit entry",
		"confirm_title":  "Are you sure?",
		"confirm_text":   "This cannot be undone!",
		"login_title":    "Owner login",
		"login_repo":     "Repository (user/repo)",
		"login_token":    "Access token",
		"login_missing":  "Please fill in both fields",
		"login_limited":  "Too many attempts, try again later",
		"not_found":      "Page not found",
		"server_error":   "Something went wrong",
		"load_failed":    "Error loading data",
		"back_home":      "Back home",
		"image_url":      "Image URL",
		"upload":         "Upload",
		"greet_m":        "Good Morning ☀️",
		"greet_a":        "Good Afternoon 🌤️",
		"greet_e":        "Good Evening 🌙",
		"lang_toggle":    "عربي",
		"theme_toggle":   "Theme",
		"admin_mode":     "Admin mode",
		"flash_expired":  "Session expired, please log in again",
		"flash_saved":    "Saved successfully",
		"flash_failed":   "Save failed",
		"flash_busy":     "Another save is already running",
		"flash_auth":     "Cannot access the repository",
		"flash_restored": "Backup restored",
		"flash_nobackup": "No backup to restore",
		"flash_deleted":  "Deleted",
		"flash_updated":  "Changes applied",
		"flash_sent":     "Your message was sent",
		"flash_unsent":   "Could not send the message",
		"flash_uploaded": "Image uploaded",
		"flash_welcome":  "Welcome back",
	},
}

// T returns the UI string for key in lang, falling back to Arabic and then
// to the key itself.
func T(lang content.Lang, key string) string {
	if s, ok := texts[lang][key]; ok {
		return s
	}
	if s, ok := texts[content.Arabic][key]; ok {
		return s
	}
	return key
}

// GreetingKey picks the greeting for an hour of the day.
func GreetingKey(hour int) string {
	switch {
	case hour < 12:
		return "greet_m"
	case hour < 18:
		return "greet_a"
	default:
		return "greet_e"
	}
}

var sectionTitleKeys = map[content.Section]string{
	content.SectionExperience:   "sec_exp",
	content.SectionSkills:       "sec_skills",
	content.SectionCertificates: "sec_certs",
	content.SectionProjects:     "sec_projects",
	content.SectionCustom:       "sec_custom",
}

// SectionTitle returns the heading of a section. The custom section uses
// its own title when set.
func (s State) SectionTitle(sec content.Section) string {
	if sec == content.SectionCustom && s.Doc != nil && s.Doc.Custom != nil {
		if t := s.R(s.Doc.Custom.Title); t != "" {
			return t
		}
	}
	return s.T(sectionTitleKeys[sec])
}
