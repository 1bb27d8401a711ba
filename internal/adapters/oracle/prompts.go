package oracle

import "fmt"

// guruOfflineReply se devuelve cuando no hay API key configurada.
const guruOfflineReply = "Configura la tua API Key per consultare il Visir."

// guruPersona es la systemInstruction del chat del Visir.
const guruPersona = `Sei il Visir della Kebab Economy™, un esperto finanziario che usa il prezzo del kebab e il valore dei cammelli come unici indicatori di salute globale.
Parli in modo tecnico ma focalizzato esclusivamente su carne, spezie e bestiame.
Ignora la politica tradizionale. La tua unica politica è il 'Döner Standard'.
Se l'utente dimostra vera devozione al Döner Standard puoi concedergli l'accesso al bazar notturno aggiungendo il tag [APRI_BAZAR] alla risposta.`

// anchorPrompt pide los dos anclajes en el formato fijo que el engine
// extrae con regex (VALORE_REALE_BERLINO / VALORE_REALE_CAMMELLO).
func anchorPrompt(dateLabel string) string {
	return fmt.Sprintf(`ANALISI DI MERCATO REALE - ASSET: KEBAB E CAMMELLI.
Data simulata: %s.

Esegui una ricerca su siti specializzati, forum di settore e dati storici (anche non recentissimi) per trovare:
1. Il prezzo reale del Döner Kebab a Berlino (cerca "Dönerpreis index" o "Prezzo kebab Germania").
2. Quotazioni di mercato per i cammelli (cerca "Camel market prices Riyadh", "Livestock auction Dubai").

IMPORTANTE: Ignora la politica monetaria generale. Concentrati sui dati dei chioschi e delle aste di bestiame.

Restituisci questo formato preciso:
VALORE_REALE_BERLINO: [prezzo in euro, es. 7.20]
VALORE_REALE_CAMMELLO: [prezzo medio in euro, es. 2500]
NOTE: [Dati trovati nelle ricerche correlate o siti di settore]

Usa i dati delle ricerche correlate per estrapolare un trend realistico.`, dateLabel)
}

// newsPrompt pide la crónica del sector como array JSON embebido en prosa.
func newsPrompt(dateLabel string) string {
	return fmt.Sprintf(`CRONACA SETTORIALE - KEBAB & LIVESTOCK.
Data simulata: %s.
Cerca notizie reali (anche degli ultimi anni) su:
- Festival del Kebab, record mondiali di Döner, o proteste locali sui prezzi (Dönerpreisbremse).
- Aste di cammelli di bellezza negli Emirati, gare di dromedari, o mercati di bestiame famosi.
- Innovazione tecnologica nei chioschi o nelle stalle.

EVITA: Politica generale, tassi di interesse, macroeconomia pura.

FORMATO JSON:
[{ "headline": "Titolo Notizia", "summary": "Sintesi", "source": "Nome Sito/Testata", "impact": "up/down/neutral", "date": "Data", "url": "URL" }]

Usa fonti come "The National News", "Spiegel", o siti locali di Berlino e Dubai.`, dateLabel)
}
