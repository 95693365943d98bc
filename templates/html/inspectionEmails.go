package templates

import (
	"fmt"
	"strings"
)

// RenderInspectionOverdueEmail generates the HTML for the nightly overdue
// inspection notice sent to department management
func RenderInspectionOverdueEmail(department string, vehicles, equipment []string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Istekli pregledi - VZO Kneginec</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: #b91c1c; padding: 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 30px; color: #1f2937; }
    .content h2 { color: #b91c1c; margin-top: 0; font-size: 16px; }
    .content ul { margin: 10px 0 20px; padding-left: 20px; color: #374151; }
    .footer { padding: 20px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Istekli periodicki pregledi</h1>
    </div>
    <div class="content">
      <p>Za odjel <strong>%s</strong> evidentirani su istekli pregledi.</p>
      %s
      %s
      <p>Molimo dogovorite termine pregleda i azurirajte evidenciju.</p>
    </div>
    <div class="footer">
      <p>Automatska obavijest sustava VZO Kneginec.</p>
    </div>
  </div>
</body>
</html>`, department, renderSection("Vozila", vehicles), renderSection("Oprema", equipment))
}

func renderSection(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2><ul>", title)
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s</li>", item)
	}
	b.WriteString("</ul>")
	return b.String()
}
