package voices

// Default язык, выбранный при создании сессии
const Default = "en-US"

// Voice связывает код локали с именем голоса
type Voice struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Label возвращает подпись для выпадающего списка, например "Joanna (en-US)"
func (v Voice) Label() string {
	return v.Name + " (" + v.Code + ")"
}

// supported фиксированный набор голосов в порядке отображения
var supported = []Voice{
	{Code: "en-US", Name: "Joanna"},
	{Code: "en-GB", Name: "Amy"},
	{Code: "es-ES", Name: "Conchita"},
	{Code: "fr-FR", Name: "Celine"},
	{Code: "de-DE", Name: "Marlene"},
	{Code: "it-IT", Name: "Carla"},
	{Code: "ja-JP", Name: "Takumi"},
	{Code: "pt-BR", Name: "Camila"},
}

// All возвращает копию списка поддерживаемых голосов
func All() []Voice {
	out := make([]Voice, len(supported))
	copy(out, supported)
	return out
}

// Lookup ищет голос по коду локали
func Lookup(code string) (Voice, bool) {
	for _, v := range supported {
		if v.Code == code {
			return v, true
		}
	}
	return Voice{}, false
}

// IsSupported проверяет, входит ли код в поддерживаемый набор
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}
