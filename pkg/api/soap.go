package api

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ssargent/dataprov/pkg/model"
	"github.com/ssargent/dataprov/pkg/record"
)

const (
	soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

	// PatientNamespace is the target namespace of the patient-records service
	PatientNamespace = "urn:dataprov:patient"

	contentTypeXML = "text/xml; charset=utf-8"

	faultClient = "soap:Client"
	faultServer = "soap:Server"
)

// Request envelope. Operation elements are matched by local name.
type soapRequest struct {
	XMLName xml.Name        `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    soapRequestBody `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type soapRequestBody struct {
	CreatePatient *patientParam `xml:"createPatient"`
	GetPatient    *idParam      `xml:"getPatient"`
	UpdatePatient *patientParam `xml:"updatePatient"`
	DeletePatient *idParam      `xml:"deletePatient"`
}

type patientParam struct {
	Patient *model.PatientRecord `xml:"patient"`
}

type idParam struct {
	ID string `xml:"id"`
}

// Response envelope
type soapResponse struct {
	XMLName xml.Name         `xml:"soap:Envelope"`
	SoapNS  string           `xml:"xmlns:soap,attr"`
	Body    soapResponseBody `xml:"soap:Body"`
}

type soapResponseBody struct {
	Content interface{}
}

// Operation responses. Each sets NS to PatientNamespace.
type createPatientResponse struct {
	XMLName xml.Name `xml:"ns:createPatientResponse"`
	NS      string   `xml:"xmlns:ns,attr"`
	Return  string   `xml:"return"`
}

type getPatientResponse struct {
	XMLName xml.Name             `xml:"ns:getPatientResponse"`
	NS      string               `xml:"xmlns:ns,attr"`
	Return  *model.PatientRecord `xml:"return"`
}

type updatePatientResponse struct {
	XMLName xml.Name `xml:"ns:updatePatientResponse"`
	NS      string   `xml:"xmlns:ns,attr"`
	Return  bool     `xml:"return"`
}

type deletePatientResponse struct {
	XMLName xml.Name `xml:"ns:deletePatientResponse"`
	NS      string   `xml:"xmlns:ns,attr"`
	Return  bool     `xml:"return"`
}

type soapFault struct {
	XMLName xml.Name     `xml:"soap:Fault"`
	Code    string       `xml:"faultcode"`
	String  string       `xml:"faultstring"`
	Detail  *faultDetail `xml:"detail,omitempty"`
}

type faultDetail struct {
	NotFound notFoundFault `xml:"ns:NotFoundFault"`
}

type notFoundFault struct {
	NS      string `xml:"xmlns:ns,attr"`
	Message string `xml:"message"`
}

// handlePatientRecords godoc
//
//	@Summary		Patient records SOAP endpoint
//	@Description	SOAP 1.1 operations createPatient, getPatient, updatePatient and deletePatient
//	@Tags			patients
//	@Accept			xml
//	@Produce		xml
//	@Success		200	{string}	string	"operation response envelope"
//	@Failure		500	{string}	string	"fault envelope"
//	@Router			/patient-records [post]
func (s *Server) handlePatientRecords(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, s.config.MaxBodyBytes)
	if err != nil {
		s.sendFault(w, "unknown", faultClient, fmt.Sprintf("failed to read request: %v", err), nil)
		return
	}

	var req soapRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		s.sendFault(w, "unknown", faultClient, fmt.Sprintf("malformed SOAP envelope: %v", err), nil)
		return
	}

	start := time.Now()
	op, response, err := s.dispatchPatient(&req.Body)
	if err != nil {
		s.metrics.RecordOperation(model.PatientKind, op, false, time.Since(start))
		if errors.Is(err, record.ErrNotFound) {
			s.sendFault(w, op, faultServer, "NotFoundException", &faultDetail{
				NotFound: notFoundFault{NS: PatientNamespace, Message: err.Error()},
			})
			return
		}
		s.sendFault(w, op, faultClient, err.Error(), nil)
		return
	}
	s.metrics.RecordOperation(model.PatientKind, op, true, time.Since(start))

	s.sendSOAP(w, http.StatusOK, response)
}

// dispatchPatient runs the single operation present in the body and returns
// its name and response element
func (s *Server) dispatchPatient(body *soapRequestBody) (string, interface{}, error) {
	switch {
	case body.CreatePatient != nil:
		id, err := s.patients.CreatePatient(body.CreatePatient.Patient)
		return "createPatient", &createPatientResponse{NS: PatientNamespace, Return: id}, err
	case body.GetPatient != nil:
		p, err := s.patients.GetPatient(body.GetPatient.ID)
		return "getPatient", &getPatientResponse{NS: PatientNamespace, Return: p}, err
	case body.UpdatePatient != nil:
		ok, err := s.patients.UpdatePatient(body.UpdatePatient.Patient)
		return "updatePatient", &updatePatientResponse{NS: PatientNamespace, Return: ok}, err
	case body.DeletePatient != nil:
		ok, err := s.patients.DeletePatient(body.DeletePatient.ID)
		return "deletePatient", &deletePatientResponse{NS: PatientNamespace, Return: ok}, err
	default:
		return "unknown", nil, fmt.Errorf("%w: no supported operation in SOAP body", record.ErrInvalidInput)
	}
}

// handlePatientWSDL godoc
//
//	@Summary		Patient records WSDL
//	@Tags			patients
//	@Produce		xml
//	@Param			wsdl	query		string	true	"Present to request the WSDL"
//	@Success		200		{string}	string
//	@Router			/patient-records [get]
func (s *Server) handlePatientWSDL(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("wsdl") {
		sendError(w, "use POST for operations or ?wsdl for the service description", http.StatusBadRequest)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	address := fmt.Sprintf("%s://%s/patient-records", scheme, r.Host)

	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, patientWSDL, PatientNamespace, address)
}

func (s *Server) sendFault(w http.ResponseWriter, op, code, message string, detail *faultDetail) {
	s.metrics.RecordSOAPFault(op, code)
	s.sendSOAP(w, http.StatusInternalServerError, &soapFault{Code: code, String: message, Detail: detail})
}

func (s *Server) sendSOAP(w http.ResponseWriter, status int, content interface{}) {
	out, err := xml.Marshal(soapResponse{
		SoapNS: soapEnvelopeNamespace,
		Body:   soapResponseBody{Content: content},
	})
	if err != nil {
		s.logger.Error("failed to encode SOAP response", "error", err)
		http.Error(w, "failed to encode SOAP response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

// patientWSDL takes the target namespace and the endpoint address
const patientWSDL = `<?xml version="1.0" encoding="UTF-8"?>
<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"
  xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
  xmlns:xsd="http://www.w3.org/2001/XMLSchema"
  xmlns:tns="%[1]s"
  targetNamespace="%[1]s"
  name="PatientRecordsService">
  <types>
    <xsd:schema targetNamespace="%[1]s">
      <xsd:complexType name="patientRecord">
        <xsd:sequence>
          <xsd:element name="id" type="xsd:string" minOccurs="0"/>
          <xsd:element name="name" type="xsd:string" minOccurs="0"/>
          <xsd:element name="dateOfBirth" type="xsd:string" minOccurs="0"/>
          <xsd:element name="notes" type="xsd:string" minOccurs="0"/>
          <xsd:element name="age" type="xsd:int"/>
          <xsd:element name="condition" type="xsd:string" minOccurs="0"/>
        </xsd:sequence>
      </xsd:complexType>
      <xsd:element name="createPatient"><xsd:complexType><xsd:sequence><xsd:element name="patient" type="tns:patientRecord"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="createPatientResponse"><xsd:complexType><xsd:sequence><xsd:element name="return" type="xsd:string"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="getPatient"><xsd:complexType><xsd:sequence><xsd:element name="id" type="xsd:string"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="getPatientResponse"><xsd:complexType><xsd:sequence><xsd:element name="return" type="tns:patientRecord"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="updatePatient"><xsd:complexType><xsd:sequence><xsd:element name="patient" type="tns:patientRecord"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="updatePatientResponse"><xsd:complexType><xsd:sequence><xsd:element name="return" type="xsd:boolean"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="deletePatient"><xsd:complexType><xsd:sequence><xsd:element name="id" type="xsd:string"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="deletePatientResponse"><xsd:complexType><xsd:sequence><xsd:element name="return" type="xsd:boolean"/></xsd:sequence></xsd:complexType></xsd:element>
      <xsd:element name="NotFoundFault"><xsd:complexType><xsd:sequence><xsd:element name="message" type="xsd:string"/></xsd:sequence></xsd:complexType></xsd:element>
    </xsd:schema>
  </types>
  <message name="createPatient"><part name="parameters" element="tns:createPatient"/></message>
  <message name="createPatientResponse"><part name="parameters" element="tns:createPatientResponse"/></message>
  <message name="getPatient"><part name="parameters" element="tns:getPatient"/></message>
  <message name="getPatientResponse"><part name="parameters" element="tns:getPatientResponse"/></message>
  <message name="updatePatient"><part name="parameters" element="tns:updatePatient"/></message>
  <message name="updatePatientResponse"><part name="parameters" element="tns:updatePatientResponse"/></message>
  <message name="deletePatient"><part name="parameters" element="tns:deletePatient"/></message>
  <message name="deletePatientResponse"><part name="parameters" element="tns:deletePatientResponse"/></message>
  <message name="NotFoundException"><part name="fault" element="tns:NotFoundFault"/></message>
  <portType name="PatientRecordsService">
    <operation name="createPatient"><input message="tns:createPatient"/><output message="tns:createPatientResponse"/></operation>
    <operation name="getPatient"><input message="tns:getPatient"/><output message="tns:getPatientResponse"/><fault name="NotFoundException" message="tns:NotFoundException"/></operation>
    <operation name="updatePatient"><input message="tns:updatePatient"/><output message="tns:updatePatientResponse"/><fault name="NotFoundException" message="tns:NotFoundException"/></operation>
    <operation name="deletePatient"><input message="tns:deletePatient"/><output message="tns:deletePatientResponse"/><fault name="NotFoundException" message="tns:NotFoundException"/></operation>
  </portType>
  <binding name="PatientRecordsServicePortBinding" type="tns:PatientRecordsService">
    <soap:binding transport="http://schemas.xmlsoap.org/soap/http" style="document"/>
    <operation name="createPatient"><soap:operation soapAction=""/><input><soap:body use="literal"/></input><output><soap:body use="literal"/></output></operation>
    <operation name="getPatient"><soap:operation soapAction=""/><input><soap:body use="literal"/></input><output><soap:body use="literal"/></output><fault name="NotFoundException"><soap:fault name="NotFoundException" use="literal"/></fault></operation>
    <operation name="updatePatient"><soap:operation soapAction=""/><input><soap:body use="literal"/></input><output><soap:body use="literal"/></output><fault name="NotFoundException"><soap:fault name="NotFoundException" use="literal"/></fault></operation>
    <operation name="deletePatient"><soap:operation soapAction=""/><input><soap:body use="literal"/></input><output><soap:body use="literal"/></output><fault name="NotFoundException"><soap:fault name="NotFoundException" use="literal"/></fault></operation>
  </binding>
  <service name="PatientRecordsService">
    <port name="PatientRecordsServicePort" binding="tns:PatientRecordsServicePortBinding">
      <soap:address location="%[2]s"/>
    </port>
  </service>
</definitions>
`
