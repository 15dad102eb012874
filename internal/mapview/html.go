package mapview

import (
	"bytes"
	"html/template"

	"github.com/gcbaptista/matjibmap/model"
)

const (
	markerSize     = 40
	markerZIndex   = 100
	overlayWidth   = 280
	highlightColor = "#f97316"
)

var markerTemplate = template.Must(template.New("marker").Parse(
	`<div class="custom-marker">` +
		`<div style="width:40px;height:40px;border-radius:50%;border:2px solid white;` +
		`box-shadow:0 2px 6px rgba(0,0,0,0.3);overflow:hidden;background-color:white;` +
		`display:flex;align-items:center;justify-content:center;cursor:pointer;` +
		`{{if .Selected}}border-color:` + highlightColor + `;{{end}}">` +
		`<img src="{{.Image}}" alt="{{.Name}}" style="width:100%;height:100%;object-fit:cover;" />` +
		`</div>` +
		`{{if .Selected}}<div class="marker-pointer" style="width:8px;height:8px;background-color:` + highlightColor +
		`;transform:rotate(45deg);margin:4px auto 0;"></div>{{end}}` +
		`</div>`))

var overlayTemplate = template.Must(template.New("overlay").Parse(
	`<div class="info-overlay" style="padding:10px;max-width:280px;background:white;border-radius:8px;` +
		`box-shadow:0 2px 6px rgba(0,0,0,0.2);">` +
		`<div style="font-weight:bold;font-size:14px;margin-bottom:5px;">{{.Name}}</div>` +
		`<div style="font-size:12px;color:#666;margin-bottom:5px;">종류: {{.Category}}</div>` +
		`<div style="font-size:12px;margin-bottom:5px;">` +
		`<span style="color:` + highlightColor + `;font-weight:bold;">{{.Rating}}</span> ({{.ReviewCount}} 리뷰)</div>` +
		`<div style="font-size:12px;color:#666;">가격대: {{.Price}}</div>` +
		`<div style="margin-top:8px;"><a href="/restaurants/{{.ID}}" style="color:` + highlightColor +
		`;font-size:12px;text-decoration:none;font-weight:500;">자세히 보기</a></div>` +
		`</div>`))

type markerData struct {
	Name     string
	Image    string
	Selected bool
}

// MarkerHTML renders the marker icon; the selected marker gets the highlight border and pointer.
func MarkerHTML(r model.Restaurant, selected bool) (string, error) {
	var buf bytes.Buffer
	err := markerTemplate.Execute(&buf, markerData{Name: r.Name, Image: r.Image, Selected: selected})
	return buf.String(), err
}

// OverlayHTML renders the info overlay shown when a marker is clicked.
func OverlayHTML(r model.Restaurant) (string, error) {
	var buf bytes.Buffer
	err := overlayTemplate.Execute(&buf, r)
	return buf.String(), err
}
