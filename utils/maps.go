package utils

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractMapSrc obtiene la URL embebible de un mapa. El panel de
// administración suele pegar el iframe completo de Google Maps, así
// que si el valor trae HTML se extrae el atributo src del primer
// iframe; si ya es una URL plana se retorna tal cual.
func ExtractMapSrc(snippet string) string {
	snippet = strings.TrimSpace(snippet)
	if snippet == "" {
		return ""
	}
	if !strings.Contains(snippet, "<") {
		return snippet
	}

	doc, err := html.Parse(strings.NewReader(snippet))
	if err != nil {
		return ""
	}
	return findIframeSrc(doc)
}

// findIframeSrc recorre el árbol buscando el primer <iframe src="...">
func findIframeSrc(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "iframe" {
		for _, attr := range n.Attr {
			if attr.Key == "src" {
				return attr.Val
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if src := findIframeSrc(child); src != "" {
			return src
		}
	}
	return ""
}
