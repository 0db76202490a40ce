package sentiment

import "sentibot/pkg/news"

// FilterWindow keeps headlines published inside the window, both ends
// inclusive. Order is preserved.
func FilterWindow(headlines []news.Headline, w Window) []news.Headline {
	filtered := make([]news.Headline, 0, len(headlines))
	for _, h := range headlines {
		if h.PublishedAt.Before(w.Start) || h.PublishedAt.After(w.End) {
			continue
		}
		filtered = append(filtered, h)
	}
	return filtered
}
