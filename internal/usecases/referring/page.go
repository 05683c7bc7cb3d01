package referring

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/referral-landing-api/internal/domain"
)

type pageData struct {
	Name     string
	Daily    string
	Weekly   string
	Monthly  string
	Yearly   string
	Referrer string
}

var pageTemplate = template.Must(template.New("referral_page").Parse(pageHTML))

// RenderPage gera a landing page personalizada de uma indicação
func RenderPage(referral *domain.Referral) ([]byte, error) {
	// decimal.NewFromFloat entra em panic com NaN e infinitos
	for _, amount := range []float64{
		referral.Earnings.Daily,
		referral.Earnings.Weekly,
		referral.Earnings.Monthly,
		referral.Earnings.Yearly,
	} {
		if !isFinite(amount) {
			return nil, NewReferralError(ErrRenderPage, referral.ID, fmt.Sprintf("valor não finito: %v", amount))
		}
	}

	data := pageData{
		Name:     referral.Name,
		Daily:    formatMoney(referral.Earnings.Daily),
		Weekly:   formatMoney(referral.Earnings.Weekly),
		Monthly:  formatMoney(referral.Earnings.Monthly),
		Yearly:   formatMoney(referral.Earnings.Yearly),
		Referrer: referral.Referrer,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, NewReferralError(ErrRenderPage, referral.ID, err.Error())
	}

	return buf.Bytes(), nil
}

func formatMoney(value float64) string {
	return "$" + decimal.NewFromFloat(value).StringFixed(2)
}

// O campo oculto "referrer" do formulário recebe o nome do dono da página:
// quem se cadastrar por aqui passa a ser indicação dele.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Crypto Success - {{.Name}}'s Page</title>
    <link rel="stylesheet" href="/static/styles.css">
</head>
<body>
    <header>
        <div class="logo">CryptoSuccess</div>
        <nav>
            <ul>
                <li><a href="#home">Home</a></li>
                <li><a href="#earnings">Earnings</a></li>
                <li><a href="#testimonial">Testimonial</a></li>
                <li><a href="#join">Join Now</a></li>
            </ul>
        </nav>
    </header>

    <section id="home" class="hero">
        <h1>Join {{.Name}}'s Crypto Success Story</h1>
        <p>Discover how you can earn passive income through our proven crypto business model</p>
        <a href="#join" class="cta-button">Get Started Now</a>
    </section>

    <section id="earnings" class="earnings">
        <h2>{{.Name}}'s Actual Earnings</h2>
        <div class="earnings-grid">
            <div class="earnings-card">
                <h3>Daily</h3>
                <p class="amount">{{.Daily}}</p>
            </div>
            <div class="earnings-card">
                <h3>Weekly</h3>
                <p class="amount">{{.Weekly}}</p>
            </div>
            <div class="earnings-card">
                <h3>Monthly</h3>
                <p class="amount">{{.Monthly}}</p>
            </div>
            <div class="earnings-card">
                <h3>Yearly</h3>
                <p class="amount">{{.Yearly}}</p>
            </div>
        </div>
    </section>

    <section id="testimonial" class="testimonial">
        <h2>Hear From {{.Name}} Directly</h2>
        <div class="video-placeholder">Video testimonial coming soon</div>
        <blockquote>
            "I never thought crypto could change my life until I discovered this business model. Now I'm earning passive income every day!"
        </blockquote>
        <p class="author">- {{.Name}}</p>
    </section>

    <section id="join" class="join-form">
        <h2>Ready to Start Your Crypto Journey?</h2>
        <p>Join through {{.Name}}'s referral and get exclusive bonuses!</p>

        <form id="referralForm">
            <div class="form-group">
                <label for="userName">Your Name</label>
                <input type="text" id="userName" name="name" placeholder="Your Full Name" required>
            </div>

            <div class="form-group">
                <label for="userEmail">Your Email</label>
                <input type="email" id="userEmail" name="email" placeholder="Your Email Address" required>
            </div>

            <div class="form-group">
                <label for="userPhone">Your Phone</label>
                <input type="tel" id="userPhone" name="phone" placeholder="Your Phone Number">
            </div>

            <div class="form-group">
                <label for="earningsDaily">Daily Earnings ($)</label>
                <input type="number" id="earningsDaily" name="daily" placeholder="e.g., 100.00" step="0.01" required>
            </div>

            <div class="form-group">
                <label for="earningsWeekly">Weekly Earnings ($)</label>
                <input type="number" id="earningsWeekly" name="weekly" placeholder="e.g., 700.00" step="0.01">
            </div>

            <div class="form-group">
                <label for="earningsMonthly">Monthly Earnings ($)</label>
                <input type="number" id="earningsMonthly" name="monthly" placeholder="e.g., 3000.00" step="0.01">
            </div>

            <div class="form-group">
                <label for="earningsYearly">Yearly Earnings ($)</label>
                <input type="number" id="earningsYearly" name="yearly" placeholder="e.g., 36500.00" step="0.01">
            </div>

            <input type="hidden" id="referrerName" name="referrer" value="{{.Name}}">

            <button type="submit" class="submit-button">Create My Personalized Page</button>
        </form>
        <div id="formSuccess" class="form-response" style="display: none">
            <p>Your personalized page is ready!</p>
            <p id="newPageUrl"></p>
        </div>
    </section>

    <footer>
        <p>&copy; 2025 Crypto Success. Referred by {{.Referrer}}</p>
    </footer>

    <script src="/static/form-handler.js"></script>
</body>
</html>
`
