// Package i18n holds the user interface strings for every supported locale.
//
// The page embeds all tables and switches language client-side, so the
// tables here are the single source of truth for both the server-rendered
// labels and the browser script.
package i18n

// Default is the locale used when none is selected or the selected one has
// no table.
const Default = "en"

// Strings is one locale's translation table.
type Strings struct {
	Title          string `json:"title"`
	StartCamera    string `json:"startCamera"`
	TakePhoto      string `json:"takePhoto"`
	SwitchCamera   string `json:"switchCamera"`
	UploadImage    string `json:"uploadImage"`
	CropImage      string `json:"cropImage"`
	Solve          string `json:"solve"`
	Solving        string `json:"solving"`
	Solution       string `json:"solution"`
	History        string `json:"history"`
	HistoryEmpty   string `json:"historyEmpty"`
	ClearHistory   string `json:"clearHistory"`
	Scan           string `json:"scan"`
	Error          string `json:"error"`
	CameraError    string `json:"cameraError"`
	SelectLanguage string `json:"selectLanguage"`
	Save           string `json:"save"`
	Help           string `json:"help"`
}

// Locale names a supported locale in its own language.
type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var locales = []Locale{
	{"en", "English"},
	{"pt-PT", "Português (Portugal)"},
	{"pt-BR", "Português (Brasil)"},
	{"es", "Español"},
	{"fr", "Français"},
	{"de", "Deutsch"},
}

var tables = map[string]Strings{
	"en": {
		Title:          "Math Solver",
		StartCamera:    "Start Camera",
		TakePhoto:      "Take Photo",
		SwitchCamera:   "Switch Camera",
		UploadImage:    "Upload Image",
		CropImage:      "Crop Image",
		Solve:          "Solve",
		Solving:        "Solving…",
		Solution:       "Solution",
		History:        "History",
		HistoryEmpty:   "No scans yet",
		ClearHistory:   "Clear History",
		Scan:           "Scan",
		Error:          "Invalid or unrecognized expression",
		CameraError:    "Could not access the camera",
		SelectLanguage: "Select Language",
		Save:           "Save",
		Help:           "How it works",
	},
	"pt-PT": {
		Title:          "Resolvedor de Matemática",
		StartCamera:    "Iniciar Câmara",
		TakePhoto:      "Tirar Fotografia",
		SwitchCamera:   "Trocar Câmara",
		UploadImage:    "Carregar Imagem",
		CropImage:      "Cortar Imagem",
		Solve:          "Resolver",
		Solving:        "A resolver…",
		Solution:       "Solução",
		History:        "Histórico",
		HistoryEmpty:   "Ainda sem digitalizações",
		ClearHistory:   "Limpar Histórico",
		Scan:           "Digitalização",
		Error:          "Expressão inválida ou não reconhecida",
		CameraError:    "Não foi possível aceder à câmara",
		SelectLanguage: "Selecionar Idioma",
		Save:           "Guardar",
		Help:           "Como funciona",
	},
	"pt-BR": {
		Title:          "Resolvedor de Matemática",
		StartCamera:    "Iniciar Câmera",
		TakePhoto:      "Tirar Foto",
		SwitchCamera:   "Trocar Câmera",
		UploadImage:    "Enviar Imagem",
		CropImage:      "Cortar Imagem",
		Solve:          "Resolver",
		Solving:        "Resolvendo…",
		Solution:       "Solução",
		History:        "Histórico",
		HistoryEmpty:   "Nenhuma digitalização ainda",
		ClearHistory:   "Limpar Histórico",
		Scan:           "Digitalização",
		Error:          "Expressão inválida ou não reconhecida",
		CameraError:    "Não foi possível acessar a câmera",
		SelectLanguage: "Selecionar Idioma",
		Save:           "Salvar",
		Help:           "Como funciona",
	},
	"es": {
		Title:          "Resolvedor de Matemáticas",
		StartCamera:    "Iniciar Cámara",
		TakePhoto:      "Tomar Foto",
		SwitchCamera:   "Cambiar Cámara",
		UploadImage:    "Subir Imagen",
		CropImage:      "Recortar Imagen",
		Solve:          "Resolver",
		Solving:        "Resolviendo…",
		Solution:       "Solución",
		History:        "Historial",
		HistoryEmpty:   "Aún no hay escaneos",
		ClearHistory:   "Borrar Historial",
		Scan:           "Escaneo",
		Error:          "Expresión inválida o no reconocida",
		CameraError:    "No se pudo acceder a la cámara",
		SelectLanguage: "Seleccionar Idioma",
		Save:           "Guardar",
		Help:           "Cómo funciona",
	},
	"fr": {
		Title:          "Solveur de Maths",
		StartCamera:    "Démarrer la caméra",
		TakePhoto:      "Prendre une photo",
		SwitchCamera:   "Changer de caméra",
		UploadImage:    "Importer une image",
		CropImage:      "Recadrer l'image",
		Solve:          "Résoudre",
		Solving:        "Résolution…",
		Solution:       "Solution",
		History:        "Historique",
		HistoryEmpty:   "Aucune analyse pour l'instant",
		ClearHistory:   "Effacer l'historique",
		Scan:           "Analyse",
		Error:          "Expression invalide ou non reconnue",
		CameraError:    "Impossible d'accéder à la caméra",
		SelectLanguage: "Choisir la langue",
		Save:           "Enregistrer",
		Help:           "Comment ça marche",
	},
	"de": {
		Title:          "Mathe-Löser",
		StartCamera:    "Kamera starten",
		TakePhoto:      "Foto aufnehmen",
		SwitchCamera:   "Kamera wechseln",
		UploadImage:    "Bild hochladen",
		CropImage:      "Bild zuschneiden",
		Solve:          "Lösen",
		Solving:        "Wird gelöst…",
		Solution:       "Lösung",
		History:        "Verlauf",
		HistoryEmpty:   "Noch keine Scans",
		ClearHistory:   "Verlauf löschen",
		Scan:           "Scan",
		Error:          "Ungültiger oder nicht erkannter Ausdruck",
		CameraError:    "Kein Zugriff auf die Kamera",
		SelectLanguage: "Sprache wählen",
		Save:           "Speichern",
		Help:           "So funktioniert's",
	},
}

// Resolve returns code if it has a translation table and Default otherwise.
func Resolve(code string) string {
	if _, ok := tables[code]; ok {
		return code
	}
	return Default
}

// Lookup returns the table for code, falling back to Default.
func Lookup(code string) Strings {
	return tables[Resolve(code)]
}

// Locales lists the supported locales in display order.
func Locales() []Locale {
	out := make([]Locale, len(locales))
	copy(out, locales)
	return out
}

// Tables returns a copy of every translation table keyed by locale code.
func Tables() map[string]Strings {
	out := make(map[string]Strings, len(tables))
	for code, t := range tables {
		out[code] = t
	}
	return out
}
