package report

import (
	"fmt"
	"os"
	"strings"
)

// The dashboard template ships with a commented-out placeholder block that the
// builder swaps for the embedded payloads, so the same template works both
// served and standalone.
const dashboardPlaceholder = `        // ═══════════════════════════════════════════════════════════════
        // PLACEHOLDER: Данные будут встроены сюда скриптом сборки
        // ═══════════════════════════════════════════════════════════════
        // const EMBEDDED_CANDIDATES = [...];
        // const EMBEDDED_MATCHING = {...};`

// BuildDashboard produces a self-contained dashboard HTML file: it reads the
// template, embeds the candidates and matching JSON payloads verbatim at the
// placeholder, and marks the page title as standalone. The result opens from
// disk with no server.
func BuildDashboard(templatePath, candidatesPath, matchingPath, outputPath string) error {
	html, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read dashboard template: %w", err)
	}

	candidatesJSON, err := os.ReadFile(candidatesPath)
	if err != nil {
		return fmt.Errorf("read candidates payload: %w", err)
	}

	matchingJSON, err := os.ReadFile(matchingPath)
	if err != nil {
		return fmt.Errorf("read matching payload: %w", err)
	}

	embedded := fmt.Sprintf(`        const EMBEDDED_CANDIDATES = %s;
        const EMBEDDED_MATCHING = %s;`,
		strings.TrimSpace(string(candidatesJSON)),
		strings.TrimSpace(string(matchingJSON)),
	)

	page := string(html)
	if !strings.Contains(page, dashboardPlaceholder) {
		return fmt.Errorf("template %q has no data placeholder", templatePath)
	}
	page = strings.Replace(page, dashboardPlaceholder, embedded, 1)
	page = strings.Replace(page,
		"<title>Dashboard - Анализ чатов</title>",
		"<title>Dashboard - Анализ чатов (Standalone)</title>", 1)

	if err := os.WriteFile(outputPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	return nil
}
