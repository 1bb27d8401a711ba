package domain

// Source es una cita devuelta por el oráculo junto a los precios ancla.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AnchorReport es la respuesta cruda de la consulta de precios reales:
// texto sin estructurar del que el engine extrae los anclajes, más las
// fuentes del grounding.
type AnchorReport struct {
	Text    string
	Sources []Source
}

// NewsImpact es la dirección esperada de una noticia sobre el mercado.
type NewsImpact string

const (
	ImpactUp      NewsImpact = "up"
	ImpactDown    NewsImpact = "down"
	ImpactNeutral NewsImpact = "neutral"
)

// NewsItem es una noticia del sector devuelta por el oráculo.
type NewsItem struct {
	Headline string     `json:"headline"`
	Summary  string     `json:"summary"`
	Source   string     `json:"source"`
	Impact   NewsImpact `json:"impact"`
	Date     string     `json:"date"`
	URL      string     `json:"url"`
}

// GuruReply es la respuesta del chat del Visir. UnlockBlackMarket indica que
// la respuesta traía la marca de desbloqueo del bazar; el adapter la extrae
// del texto para que el core no dependa de markup literal.
type GuruReply struct {
	Reply             string
	UnlockBlackMarket bool
}
