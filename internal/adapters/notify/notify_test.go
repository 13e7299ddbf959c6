package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pranav-2399/nexus-website/internal/adapters/notify"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// redirect sends every request to the test server, keeping the path.
type redirect struct{ target *url.URL }

func (r redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestParseWebhookURL(t *testing.T) {
	Convey("ParseWebhookURL", t, func() {
		id, token, err := notify.ParseWebhookURL("https://discord.com/api/webhooks/1234/tok-en")
		So(err, ShouldBeNil)
		So(id, ShouldEqual, "1234")
		So(token, ShouldEqual, "tok-en")

		for _, bad := range []string{"", "http://discord.com/api/webhooks/1/2", "https://discord.com/api/webhooks/1", "not a url"} {
			_, _, err := notify.ParseWebhookURL(bad)
			So(err, ShouldEqual, notify.ErrInvalidWebhook)
		}
	})
}

func TestTranslator(t *testing.T) {
	Convey("Given translators", t, func() {
		en, err := notify.NewTranslator("en")
		So(err, ShouldBeNil)
		fr, err := notify.NewTranslator("fr")
		So(err, ShouldBeNil)
		xx, err := notify.NewTranslator("not-a-locale!")
		So(err, ShouldBeNil)

		data := map[string]any{"Author": "Asha"}
		So(en.T("FeedbackReceived", data), ShouldEqual, "New feedback from Asha")
		So(fr.T("FeedbackReceived", data), ShouldEqual, "Nouveau retour de Asha")
		So(xx.Locale(), ShouldEqual, "en")
		So(en.T("NoSuchMessage", nil), ShouldEqual, "NoSuchMessage")
	})
}

func TestDiscordNotify(t *testing.T) {
	Convey("Given a fake Discord API", t, func() {
		var gotPath string
		var got map[string]any
		status := http.StatusNoContent
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, &got)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			if status >= 400 {
				_, _ = w.Write([]byte(`{"message":"Unknown Webhook","code":10015}`))
			}
		}))
		defer srv.Close()
		target, _ := url.Parse(srv.URL)

		d, err := notify.NewDiscord("https://discord.com/api/webhooks/42/secret", "en",
			notify.WithHTTPClient(&http.Client{Transport: redirect{target}}),
			notify.WithUsername("Club Bot"))
		So(err, ShouldBeNil)

		Convey("Notify posts a localized message to the webhook", func() {
			err := d.Notify(context.Background(), &model.Notification{
				Topic: model.TopicEvent,
				Title: "Hack Night",
				Body:  "Bring snacks",
				Link:  "https://club.test/events/hack-night",
			})
			So(err, ShouldBeNil)
			So(strings.HasSuffix(gotPath, "/webhooks/42/secret"), ShouldBeTrue)
			So(got["content"], ShouldEqual, "New event published: Hack Night")
			So(got["username"], ShouldEqual, "Club Bot")
			embeds, ok := got["embeds"].([]any)
			So(ok, ShouldBeTrue)
			So(embeds, ShouldHaveLength, 1)
			So(embeds[0].(map[string]any)["description"], ShouldEqual, "Bring snacks")
		})

		Convey("API failures surface as delivery errors", func() {
			status = http.StatusNotFound
			err := d.Notify(context.Background(), &model.Notification{Topic: model.TopicFeedback, Title: "hi"})
			So(errors.Is(err, notify.ErrDeliver), ShouldBeTrue)
		})
	})

	Convey("Render falls back for anonymous feedback and long bodies", t, func() {
		d, err := notify.NewDiscord("https://discord.com/api/webhooks/1/t", "fr")
		So(err, ShouldBeNil)
		p := d.Render(&model.Notification{Topic: model.TopicFeedback, Body: strings.Repeat("a", 5000)})
		So(p.Content, ShouldEqual, "Nouveau retour de quelqu'un")
		So(len([]rune(p.Embeds[0].Description)), ShouldEqual, 4096)
	})

	Convey("Noop accepts everything", t, func() {
		So(notify.Noop{}.Notify(context.Background(), &model.Notification{}), ShouldBeNil)
	})
}
