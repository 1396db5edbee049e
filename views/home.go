package views

import (
	"bytes"
	"encoding/json"
	"html"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/Phonesis/personal-work-site/content"
)

// Home renders the CV landing page with the newest blog posts below it.
func Home(p HomePage) templ.Component {
	prof := p.Profile
	title := prof.Name
	if prof.Headline != "" {
		title += " | " + prof.Headline
	}
	meta := PageMeta{
		Title:       title,
		Description: p.Site.Description,
		URL:         PageURL(p.Site),
		OGType:      "profile",
		JSONLD:      PersonJsonLD(p.Site, prof),
	}
	if prof.Photo != "" {
		meta.Image = absURL(p.Site, prof.Photo)
	}
	return page(p.Site, meta, func(buf *bytes.Buffer) {
		writeProfileHeader(buf, prof)

		if len(prof.About) > 0 {
			buf.WriteString(`<section id="about" class="mb-12"><h2 class="text-2xl font-bold mb-4">About ` + html.EscapeString(firstName(prof.Name)) + `</h2>`)
			for _, para := range prof.About {
				buf.WriteString(`<p class="text-gray-300 text-lg leading-relaxed mb-4">` + html.EscapeString(para) + `</p>`)
			}
			buf.WriteString(`</section>`)
		}

		if f := prof.Featured; f != nil {
			writeFeatured(buf, *f)
		}

		if len(prof.Skills) > 0 {
			buf.WriteString(`<section id="skills" class="mb-12"><h2 class="text-2xl font-bold mb-6">Core Skills</h2>`)
			for _, g := range prof.Skills {
				writeSkillGroup(buf, g)
			}
			buf.WriteString(`</section>`)
		}

		if len(prof.Projects) > 0 {
			buf.WriteString(`<section id="projects" class="mb-12"><h2 class="text-2xl font-bold mb-6">Notable Career Projects</h2><div class="bg-gray-800 rounded-lg p-6 space-y-8">`)
			for _, pr := range prof.Projects {
				buf.WriteString(`<div class="project"><h3 class="text-xl font-bold text-emerald-400 mb-1">` + html.EscapeString(pr.Name))
				if pr.Period != "" {
					buf.WriteString(` <span class="period text-gray-400 font-normal">(` + html.EscapeString(pr.Period) + `)</span>`)
				}
				buf.WriteString(`</h3>`)
				if pr.Description != "" {
					buf.WriteString(`<p class="text-gray-300 mb-1"><span class="font-semibold">Description:</span> ` + html.EscapeString(pr.Description) + `</p>`)
				}
				if pr.Role != "" {
					buf.WriteString(`<p class="text-gray-300"><span class="font-semibold">Role:</span> ` + html.EscapeString(pr.Role) + `</p>`)
				}
				buf.WriteString(`</div>`)
			}
			buf.WriteString(`</div></section>`)
		}

		if len(prof.Experience) > 0 {
			buf.WriteString(`<section id="experience" class="mb-12"><h2 class="text-2xl font-bold mb-6">Work Experience</h2>`)
			for _, exp := range prof.Experience {
				writeExperience(buf, exp)
			}
			buf.WriteString(`</section>`)
		}

		if len(prof.Education) > 0 || len(prof.Certifications) > 0 {
			buf.WriteString(`<section id="education" class="mb-12"><h2 class="text-2xl font-bold mb-6">Education &amp; Certifications</h2><div class="bg-gray-800 rounded-lg p-6">`)
			for _, ed := range prof.Education {
				buf.WriteString(`<div class="mb-6"><h3 class="text-xl font-bold">` + html.EscapeString(ed.Title) + `</h3>`)
				writeLine(buf, "text-gray-300", ed.Institution)
				writeLine(buf, "text-gray-400", ed.Period)
				buf.WriteString(`</div>`)
			}
			if len(prof.Certifications) > 0 {
				buf.WriteString(`<div class="certifications space-y-4">`)
				for _, c := range prof.Certifications {
					buf.WriteString(`<div><h4 class="font-semibold">` + html.EscapeString(c.Title) + `</h4>`)
					writeLine(buf, "text-gray-300", c.Detail)
					writeLine(buf, "text-gray-400", c.Issued)
					buf.WriteString(`</div>`)
				}
				buf.WriteString(`</div>`)
			}
			buf.WriteString(`</div></section>`)
		}

		if len(prof.Interests) > 0 {
			buf.WriteString(`<section id="interests" class="mb-12"><h2 class="text-2xl font-bold mb-6">Personal Interests</h2><ul class="grid grid-cols-2 md:grid-cols-3 gap-4 text-gray-300">`)
			for _, in := range prof.Interests {
				buf.WriteString(`<li>` + html.EscapeString(in) + `</li>`)
			}
			buf.WriteString(`</ul></section>`)
		}

		if len(p.Latest) > 0 {
			buf.WriteString(`<section id="latest" class="mb-12"><h2 class="text-2xl font-bold mb-6">Latest from the Blog</h2><div class="posts grid gap-8 md:grid-cols-2 lg:grid-cols-3">`)
			for _, post := range p.Latest {
				writeCard(buf, post)
			}
			buf.WriteString(`</div><p class="mt-6"><a href="/blog" class="` + linkClass + `">All posts</a></p></section>`)
		}
	})
}

func writeProfileHeader(buf *bytes.Buffer, prof content.Profile) {
	buf.WriteString(`<section class="profile flex flex-col md:flex-row items-center md:items-start gap-6 mb-12">`)
	if src := safeURL(prof.Photo); src != "" {
		buf.WriteString(`<img src="` + src + `" alt="` + html.EscapeString(prof.Name) + ` profile photo" width="120" height="120" class="rounded-full border-4 border-gray-700"/>`)
	}
	buf.WriteString(`<div class="text-center md:text-left"><h1 class="text-4xl md:text-5xl font-bold mb-2">` + html.EscapeString(prof.Name) + `</h1>`)
	if prof.Headline != "" {
		buf.WriteString(`<p class="headline text-xl md:text-2xl text-gray-300">` + html.EscapeString(prof.Headline) + `</p>`)
	}
	buf.WriteString(`<p class="contact mt-4 flex gap-4 justify-center md:justify-start">`)
	if prof.Email != "" {
		if href := safeURL("mailto:" + prof.Email); href != "" {
			buf.WriteString(`<a href="` + href + `" class="` + linkClass + `">Contact Me</a>`)
		}
	}
	if href := safeURL(prof.LinkedIn); href != "" {
		buf.WriteString(`<a href="` + href + `" target="_blank" rel="noopener noreferrer" class="` + linkClass + `">LinkedIn</a>`)
	}
	buf.WriteString(`</p></div></section>`)
}

func writeFeatured(buf *bytes.Buffer, f content.Featured) {
	href := safeURL(f.URL)
	if href == "" {
		return
	}
	label := f.Label
	if label == "" {
		label = "Read more"
	}
	buf.WriteString(`<section id="featured" class="mb-12"><div class="bg-gray-800 rounded-lg p-6 flex flex-col sm:flex-row items-center gap-4">`)
	if src := safeURL(f.Image); src != "" {
		buf.WriteString(`<img src="` + src + `" alt="" loading="lazy" class="w-full sm:w-1/2 rounded-lg object-contain"/>`)
	}
	buf.WriteString(`<div class="flex-1"><p class="text-lg font-semibold mb-2">` + html.EscapeString(f.Text) + `</p>`)
	buf.WriteString(`<a href="` + href + `" target="_blank" rel="noopener noreferrer" class="inline-block px-6 py-2 mt-2 bg-emerald-600 text-white font-bold rounded">` + html.EscapeString(label) + `</a>`)
	buf.WriteString(`</div></div></section>`)
}

func writeSkillGroup(buf *bytes.Buffer, g content.SkillGroup) {
	buf.WriteString(`<div class="skill-group mb-8"><h3 class="text-xl font-bold mb-4">` + html.EscapeString(g.Title) + `</h3><div class="flex flex-wrap gap-3">`)
	for _, s := range g.Skills {
		buf.WriteString(`<div class="skill bg-gray-800 rounded-lg px-5 py-3 border border-gray-700"><span class="font-medium">` + html.EscapeString(s.Name) + `</span>`)
		if s.Rated() {
			level := min(s.Level, content.MaxSkillLevel)
			lv := strconv.Itoa(level)
			buf.WriteString(`<div class="mt-2 w-24 h-2 bg-gray-700 rounded-full overflow-hidden" role="progressbar" aria-valuenow="` + lv + `" aria-valuemin="0" aria-valuemax="10" aria-label="` + html.EscapeString(s.Name) + ` proficiency: ` + lv + ` out of 10">`)
			buf.WriteString(`<div class="h-full bg-emerald-500" style="width: ` + strconv.Itoa(level*10) + `%"></div></div>`)
		}
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</div></div>`)
}

func writeExperience(buf *bytes.Buffer, exp content.Experience) {
	buf.WriteString(`<article class="experience mb-8 bg-gray-800 rounded-lg p-6"><h3 class="text-xl font-bold">` + html.EscapeString(exp.Title) + `</h3>`)
	buf.WriteString(`<div class="text-gray-300 mt-1"><span class="company font-semibold">` + html.EscapeString(exp.Company) + `</span>`)
	if exp.Period != "" {
		buf.WriteString(`<span class="mx-2">•</span><span class="period">` + html.EscapeString(exp.Period) + `</span>`)
	}
	buf.WriteString(`</div>`)
	if exp.Location != "" {
		buf.WriteString(`<div class="location text-gray-400 mb-4">` + html.EscapeString(exp.Location) + `</div>`)
	}
	if len(exp.Skills) > 0 {
		buf.WriteString(`<div class="skills flex flex-wrap gap-2 mb-4">`)
		for _, s := range exp.Skills {
			buf.WriteString(`<span class="` + TagClass(false) + `">` + html.EscapeString(s) + `</span>`)
		}
		buf.WriteString(`</div>`)
	}
	if len(exp.Responsibilities) > 0 {
		buf.WriteString(`<ul class="list-disc list-inside space-y-2 text-gray-300">`)
		for _, r := range exp.Responsibilities {
			buf.WriteString(`<li>` + html.EscapeString(r) + `</li>`)
		}
		buf.WriteString(`</ul>`)
	}
	buf.WriteString(`</article>`)
}

func writeLine(buf *bytes.Buffer, class, text string) {
	if text == "" {
		return
	}
	buf.WriteString(`<p class="` + class + `">` + html.EscapeString(text) + `</p>`)
}

func firstName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first
}

// PersonJsonLD produces a Schema.org Person JSON-LD block for the CV page.
func PersonJsonLD(site Site, prof content.Profile) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     prof.Name,
		"url":      PageURL(site),
	}
	if prof.Headline != "" {
		data["jobTitle"] = prof.Headline
	}
	if prof.LinkedIn != "" {
		data["sameAs"] = []string{prof.LinkedIn}
	}
	if prof.Photo != "" {
		data["image"] = absURL(site, prof.Photo)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
