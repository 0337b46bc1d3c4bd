package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ssargent/dataprov/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:pat="%s">
  <soapenv:Header/>
  <soapenv:Body>%s</soapenv:Body>
</soapenv:Envelope>`, PatientNamespace, body)
}

// parsed response envelope, matched by local names
type testResponse struct {
	Body struct {
		Create *struct {
			Return string `xml:"return"`
		} `xml:"createPatientResponse"`
		Get *struct {
			Return model.PatientRecord `xml:"return"`
		} `xml:"getPatientResponse"`
		Update *struct {
			Return bool `xml:"return"`
		} `xml:"updatePatientResponse"`
		Delete *struct {
			Return bool `xml:"return"`
		} `xml:"deletePatientResponse"`
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
			Detail *struct {
				NotFound *struct {
					Message string `xml:"message"`
				} `xml:"NotFoundFault"`
			} `xml:"detail"`
		} `xml:"Fault"`
	} `xml:"Body"`
}

func (e *testEnv) soap(t *testing.T, body string) (int, testResponse) {
	t.Helper()
	w := e.do(t, "POST", "/patient-records", envelope(body))
	assert.Equal(t, contentTypeXML, w.Header().Get("Content-Type"))

	var resp testResponse
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestSOAP_PatientLifecycle(t *testing.T) {
	env := setupTestServer(t)

	code, resp := env.soap(t, `<pat:createPatient><patient><name>Ada Lovelace</name><dateOfBirth>1815-12-10</dateOfBirth><age>36</age><condition>stable</condition></patient></pat:createPatient>`)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Body.Create)
	id := resp.Body.Create.Return
	assert.NotEmpty(t, id)

	code, resp = env.soap(t, fmt.Sprintf(`<pat:getPatient><id>%s</id></pat:getPatient>`, id))
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Body.Get)
	assert.Equal(t, model.PatientRecord{ID: id, Name: "Ada Lovelace", DateOfBirth: "1815-12-10", Age: 36, Condition: "stable"}, resp.Body.Get.Return)

	code, resp = env.soap(t, fmt.Sprintf(`<pat:updatePatient><patient><id>%s</id><name>Ada King</name><age>37</age></patient></pat:updatePatient>`, id))
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Body.Update)
	assert.True(t, resp.Body.Update.Return)

	p, err := env.patients.GetPatient(id)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", p.Name)
	assert.Empty(t, p.Condition)

	code, resp = env.soap(t, fmt.Sprintf(`<pat:deletePatient><id>%s</id></pat:deletePatient>`, id))
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Body.Delete)
	assert.True(t, resp.Body.Delete.Return)
	assert.Zero(t, env.patients.Len())
}

func TestSOAP_NotFoundFaults(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "get absent", body: `<pat:getPatient><id>nope</id></pat:getPatient>`},
		{name: "update absent", body: `<pat:updatePatient><patient><id>nope</id></patient></pat:updatePatient>`},
		{name: "update without id", body: `<pat:updatePatient><patient><name>x</name></patient></pat:updatePatient>`},
		{name: "update without patient", body: `<pat:updatePatient/>`},
		{name: "delete absent", body: `<pat:deletePatient><id>nope</id></pat:deletePatient>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.soap(t, tt.body)
			assert.Equal(t, http.StatusInternalServerError, code)
			require.NotNil(t, resp.Body.Fault)
			assert.Equal(t, faultServer, resp.Body.Fault.Code)
			require.NotNil(t, resp.Body.Fault.Detail)
			require.NotNil(t, resp.Body.Fault.Detail.NotFound)
			assert.Contains(t, resp.Body.Fault.Detail.NotFound.Message, "not found")
		})
	}

	assert.Equal(t, 5.0, testutil.ToFloat64(env.metrics.soapFaultsTotal.WithLabelValues("updatePatient", faultServer))+
		testutil.ToFloat64(env.metrics.soapFaultsTotal.WithLabelValues("getPatient", faultServer))+
		testutil.ToFloat64(env.metrics.soapFaultsTotal.WithLabelValues("deletePatient", faultServer)))
}

func TestSOAP_ClientFaults(t *testing.T) {
	env := setupTestServer(t)

	t.Run("create without patient", func(t *testing.T) {
		code, resp := env.soap(t, `<pat:createPatient/>`)
		assert.Equal(t, http.StatusInternalServerError, code)
		require.NotNil(t, resp.Body.Fault)
		assert.Equal(t, faultClient, resp.Body.Fault.Code)
		assert.Nil(t, resp.Body.Fault.Detail)
	})

	t.Run("unknown operation", func(t *testing.T) {
		code, resp := env.soap(t, `<pat:listPatients/>`)
		assert.Equal(t, http.StatusInternalServerError, code)
		require.NotNil(t, resp.Body.Fault)
		assert.Equal(t, faultClient, resp.Body.Fault.Code)
	})

	t.Run("malformed envelope", func(t *testing.T) {
		w := env.do(t, "POST", "/patient-records", "<not-soap>")
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp testResponse
		require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Body.Fault)
		assert.Equal(t, faultClient, resp.Body.Fault.Code)
		assert.Contains(t, resp.Body.Fault.String, "malformed SOAP envelope")
	})
}

func TestSOAP_WSDL(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, "GET", "/patient-records?wsdl", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeXML, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `targetNamespace="urn:dataprov:patient"`)
	assert.Contains(t, w.Body.String(), `<soap:address location="http://example.com/patient-records"/>`)

	var doc struct {
		Operations []struct {
			Name string `xml:"name,attr"`
		} `xml:"portType>operation"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Len(t, doc.Operations, 4)

	w = env.do(t, "GET", "/patient-records", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSOAP_ResponseElementNamespace(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, "POST", "/patient-records", envelope(`<pat:createPatient><patient><name>Grace</name></patient></pat:createPatient>`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<ns:createPatientResponse xmlns:ns="`+PatientNamespace+`">`)

	var resp struct {
		Body struct {
			Create *struct {
				Return string `xml:"return"`
			} `xml:"urn:dataprov:patient createPatientResponse"`
		} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Body.Create)
	assert.NotEmpty(t, resp.Body.Create.Return)
}
