package domain

// ChartName identifica um dos painéis de gráfico do dashboard
type ChartName string

const (
	ChartSalesBySalesman          ChartName = "sales-by-salesman"
	ChartSalesByProduct           ChartName = "sales-by-product"
	ChartRevenueByRegion          ChartName = "revenue-by-region"
	ChartSatisfactionOverTime     ChartName = "satisfaction-over-time"
	ChartSatisfactionDistribution ChartName = "satisfaction-distribution"
	ChartFeedback                 ChartName = "feedback"
	ChartCallsBySalesman          ChartName = "calls-by-salesman"
	ChartSalesShareByProduct      ChartName = "sales-share-by-product"
	ChartRevenueShareByRegion     ChartName = "revenue-share-by-region"
)

// ChartPanel descreve um painel: título exibido e a seção a que pertence
type ChartPanel struct {
	Name    ChartName
	Title   string
	Section string
}

// ChartPanels segue a ordem de exibição na página
var ChartPanels = []ChartPanel{
	{Name: ChartSalesBySalesman, Title: "Total Sales by Salesman", Section: "Sales Overview"},
	{Name: ChartSalesByProduct, Title: "Sales by Product", Section: "Sales Overview"},
	{Name: ChartRevenueByRegion, Title: "Revenue by Region", Section: "Sales Overview"},
	{Name: ChartSatisfactionOverTime, Title: "Client Satisfaction Over Time", Section: "Client Satisfaction and Feedback"},
	{Name: ChartSatisfactionDistribution, Title: "Client Satisfaction Distribution", Section: "Client Satisfaction and Feedback"},
	{Name: ChartFeedback, Title: "Positive vs Negative Feedback", Section: "Client Satisfaction and Feedback"},
	{Name: ChartCallsBySalesman, Title: "Total Calls by Salesman", Section: "Other Metrics"},
	{Name: ChartSalesShareByProduct, Title: "Sales Distribution by Product", Section: "Other Metrics"},
	{Name: ChartRevenueShareByRegion, Title: "Revenue Distribution by Region", Section: "Other Metrics"},
}

// FindChartPanel busca o painel pelo nome
func FindChartPanel(name ChartName) (ChartPanel, bool) {
	for _, panel := range ChartPanels {
		if panel.Name == name {
			return panel, true
		}
	}
	return ChartPanel{}, false
}
