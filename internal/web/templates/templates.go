// Package templates renders the HTMX fragments served by the web layer.
// Components live in fragments.templ; run templ generate after editing it.
package templates

// labels holds the fixed UI strings per base language.
var labels = map[string]map[string]string{
	"en": {
		"preview":    "Import preview",
		"ready":      "tasks ready to import",
		"rejected":   "rows rejected",
		"skipped":    "lines skipped",
		"processing": "Processing…",
		"empty":      "No tasks pending",
		"stale":      "The last import failed. These tasks are from an earlier import.",
		"committed":  "tasks added",
		"remaining":  "tasks still pending",
		"title":      "Title",
		"category":   "Category",
		"time":       "Time",
	},
	"fr": {
		"preview":    "Aperçu de l'importation",
		"ready":      "tâches prêtes à importer",
		"rejected":   "lignes rejetées",
		"skipped":    "lignes ignorées",
		"processing": "Traitement…",
		"empty":      "Aucune tâche en attente",
		"stale":      "La dernière importation a échoué. Ces tâches proviennent d'une importation précédente.",
		"committed":  "tâches ajoutées",
		"remaining":  "tâches encore en attente",
		"title":      "Titre",
		"category":   "Catégorie",
		"time":       "Horaire",
	},
	"ar": {
		"preview":    "معاينة الاستيراد",
		"ready":      "مهام جاهزة للاستيراد",
		"rejected":   "صفوف مرفوضة",
		"skipped":    "أسطر متجاهلة",
		"processing": "جارٍ المعالجة…",
		"empty":      "لا توجد مهام معلقة",
		"stale":      "فشل آخر استيراد. هذه المهام من استيراد سابق.",
		"committed":  "مهام مضافة",
		"remaining":  "مهام لا تزال معلقة",
		"title":      "العنوان",
		"category":   "الفئة",
		"time":       "الوقت",
	},
}

func label(lang, key string) string {
	if l, ok := labels[lang][key]; ok {
		return l
	}
	return labels["en"][key]
}

// dir returns the text direction attribute value for lang.
func dir(lang string) string {
	if lang == "ar" {
		return "rtl"
	}
	return "ltr"
}
