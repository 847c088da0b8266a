// Package kma fetches daily surface observations (ASOS) from the Korea
// Meteorological Administration open-data API and classifies each day's
// weather into the summary labels the trend statistics group by.
package kma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type Client struct {
	endpoint   string
	serviceKey string
	stationID  string
	httpClient *http.Client
}

// Observation is one day of ASOS data with the fields the service stores.
// Date is as the API reports it (YYYY-MM-DD).
type Observation struct {
	Date          string
	AvgTemp       float64
	MinTemp       float64
	MaxTemp       float64
	OneHourRain   float64
	SumRain       float64
	AvgHumidity   float64
	AvgTotalCloud float64
}

// Summary returns the classified label for the observation.
func (o Observation) Summary() string {
	return Summarize(o.AvgTotalCloud, o.OneHourRain)
}

type apiResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []apiItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// ASOS reports every value as a string, empty when missing.
type apiItem struct {
	Date        string `json:"tm"`
	AvgTemp     string `json:"avgTa"`
	MinTemp     string `json:"minTa"`
	MaxTemp     string `json:"maxTa"`
	OneHourRain string `json:"hr1MaxRn"`
	SumRain     string `json:"sumRn"`
	AvgHumidity string `json:"avgRhm"`
	AvgCloud    string `json:"avgTca"`
}

func NewClient(endpoint, serviceKey, stationID string) *Client {
	return &Client{
		endpoint:   endpoint,
		serviceKey: serviceKey,
		stationID:  stationID,
		httpClient: &http.Client{},
	}
}

// FetchDaily requests the daily observations between startDate and endDate,
// both inclusive and in the API's compact YYYYMMDD form.
func (c *Client) FetchDaily(ctx context.Context, startDate, endDate string) ([]Observation, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("numOfRows", "10")
	params.Set("pageNo", "1")
	params.Set("dataType", "JSON")
	params.Set("dataCd", "ASOS")
	params.Set("dateCd", "DAY")
	params.Set("startDt", startDate)
	params.Set("endDt", endDate)
	params.Set("stnIds", c.stationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	header := decoded.Response.Header
	if header.ResultCode != "00" {
		return nil, fmt.Errorf("weather API error %s: %s", header.ResultCode, header.ResultMsg)
	}

	items := decoded.Response.Body.Items.Item
	observations := make([]Observation, 0, len(items))
	for _, item := range items {
		observations = append(observations, Observation{
			Date:          item.Date,
			AvgTemp:       parseFloat(item.AvgTemp),
			MinTemp:       parseFloat(item.MinTemp),
			MaxTemp:       parseFloat(item.MaxTemp),
			OneHourRain:   parseFloat(item.OneHourRain),
			SumRain:       parseFloat(item.SumRain),
			AvgHumidity:   parseFloat(item.AvgHumidity),
			AvgTotalCloud: parseFloat(item.AvgCloud),
		})
	}
	return observations, nil
}

// parseFloat treats the API's empty strings as zero.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
